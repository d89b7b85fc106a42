// Package stats summarizes scanned notes: file counts, tag coverage and the
// refactoring progress between a done and a todo tag.
package stats

import (
	"github.com/Paintersrp/zrt/internal/note"
)

// PatternStats is the share of notes carrying a tag.
type PatternStats struct {
	Tag      string
	Total    int
	Matching int
}

func (p PatternStats) Percentage() float64 {
	return percent(p.Matching, p.Total)
}

func Pattern(records []note.Record, tag string) PatternStats {
	stats := PatternStats{Tag: tag, Total: len(records)}
	for _, r := range records {
		if r.Tags.Has(tag) {
			stats.Matching++
		}
	}
	return stats
}

// ComparisonStats counts notes tagged done against notes tagged todo.
type ComparisonStats struct {
	DoneTag string
	TodoTag string
	Total   int
	Done    int
	Todo    int
}

// Percentage is done over done plus todo; notes carrying neither tag are
// left out.
func (c ComparisonStats) Percentage() float64 {
	return percent(c.Done, c.Done+c.Todo)
}

func Compare(records []note.Record, done, todo string) ComparisonStats {
	stats := ComparisonStats{DoneTag: done, TodoTag: todo, Total: len(records)}
	for _, r := range records {
		if r.Tags.Has(done) {
			stats.Done++
		}
		if r.Tags.Has(todo) {
			stats.Todo++
		}
	}
	return stats
}

// WordStats weighs a tag by the words of the notes carrying it.
type WordStats struct {
	Tag         string
	TaggedFiles int
	TaggedWords int
	TotalFiles  int
	TotalWords  int
}

func (w WordStats) Percentage() float64 {
	return percent(w.TaggedWords, w.TotalWords)
}

func Words(records []note.Record, tag string) WordStats {
	stats := WordStats{Tag: tag, TotalFiles: len(records)}
	for _, r := range records {
		stats.TotalWords += r.Words
		if r.Tags.Has(tag) {
			stats.TaggedFiles++
			stats.TaggedWords += r.Words
		}
	}
	return stats
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
