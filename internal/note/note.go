// Package note defines the per-file metadata record produced by a vault scan.
package note

import (
	"sort"
	"time"
)

// Record captures what a scan learned about a single note. Records are built
// once per file and never mutated afterwards.
type Record struct {
	Path       string
	Tags       TagSet
	Words      int
	ModifiedAt time.Time
}

// TagSet is an unordered set of front matter tags.
type TagSet map[string]struct{}

// NewTagSet builds a set from the provided tags, dropping duplicates.
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

// Has reports whether tag is a member of the set. Comparison is exact.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

func (s TagSet) Len() int {
	return len(s)
}

// Only reports whether the set is exactly {tag}.
func (s TagSet) Only(tag string) bool {
	return len(s) == 1 && s.Has(tag)
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
