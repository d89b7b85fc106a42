// Package cache keeps recently rendered note previews.
package cache

import (
	"container/list"
)

// LRU is a least recently used string cache bounded by the total bytes of
// its keys and values.
type LRU struct {
	maxBytes  int
	size      int
	evictList *list.List
	items     map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

func (e *entry) bytes() int {
	return len(e.key) + len(e.value)
}

func NewLRU(maxBytes int) *LRU {
	return &LRU{
		maxBytes:  maxBytes,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

func (c *LRU) Get(key string) (string, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return "", false
}

// Put stores value under key. Values that alone exceed the bound are not
// stored and drop any previous value for key.
func (c *LRU) Put(key, value string) {
	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}

	e := &entry{key: key, value: value}
	if e.bytes() > c.maxBytes {
		return
	}

	c.items[key] = c.evictList.PushFront(e)
	c.size += e.bytes()

	for c.size > c.maxBytes {
		c.removeOldest()
	}
}

func (c *LRU) Len() int {
	return c.evictList.Len()
}

// Size returns the bytes held by keys and values.
func (c *LRU) Size() int {
	return c.size
}

func (c *LRU) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRU) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
	c.size -= kv.bytes()
}
