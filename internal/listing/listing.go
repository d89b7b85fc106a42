// Package listing orders and truncates filtered note records.
package listing

import (
	"fmt"
	"sort"

	"github.com/Paintersrp/zrt/internal/note"
)

type SortKey int

const (
	// ByScan keeps the scan order.
	ByScan SortKey = iota
	// ByWords orders by word count, largest first. Ties keep scan order.
	ByWords
	// ByPath orders by path ascending.
	ByPath
)

func (k SortKey) String() string {
	switch k {
	case ByWords:
		return "words"
	case ByPath:
		return "path"
	default:
		return "scan"
	}
}

// ParseSortKey maps a flag value onto a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", "scan":
		return ByScan, nil
	case "words":
		return ByWords, nil
	case "path":
		return ByPath, nil
	}
	return ByScan, fmt.Errorf("unknown sort key %q", s)
}

// SortSpec selects the ordering and an optional limit. A nil Limit keeps
// every record.
type SortSpec struct {
	Key   SortKey
	Limit *int
}

// Sort returns a sorted copy of records.
func Sort(records []note.Record, key SortKey) []note.Record {
	out := make([]note.Record, len(records))
	copy(out, records)

	switch key {
	case ByWords:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Words > out[j].Words
		})
	case ByPath:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Path < out[j].Path
		})
	}
	return out
}

// Limit returns the first n records, or all of them when n is nil.
func Limit(records []note.Record, n *int) []note.Record {
	if n == nil || *n >= len(records) {
		return records
	}
	if *n <= 0 {
		return records[:0]
	}
	return records[:*n]
}

// Apply sorts then limits.
func Apply(records []note.Record, spec SortSpec) []note.Record {
	return Limit(Sort(records, spec.Key), spec.Limit)
}
