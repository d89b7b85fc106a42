package stats

import (
	"sort"

	"github.com/Paintersrp/zrt/internal/note"
)

// TagCount is a tag and the number of notes carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounter tallies tags across notes.
type TagCounter struct {
	counts map[string]int
}

func NewTagCounter() *TagCounter {
	return &TagCounter{counts: make(map[string]int)}
}

// Add counts a single tag occurrence.
func (tc *TagCounter) Add(tag string) {
	tc.counts[tag]++
}

// AddRecord counts every tag of r once.
func (tc *TagCounter) AddRecord(r note.Record) {
	for tag := range r.Tags {
		tc.Add(tag)
	}
}

// Sorted returns the counts ordered by count, largest first, then by tag.
func (tc *TagCounter) Sorted(ascending bool) []TagCount {
	out := make([]TagCount, 0, len(tc.counts))
	for tag, count := range tc.counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			if ascending {
				return out[i].Count < out[j].Count
			}
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// TagFrequency counts tags across records, most frequent first unless
// ascending is set.
func TagFrequency(records []note.Record, ascending bool) []TagCount {
	tc := NewTagCounter()
	for _, r := range records {
		tc.AddRecord(r)
	}
	return tc.Sorted(ascending)
}
