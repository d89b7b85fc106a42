package report

import (
	"fmt"

	"github.com/Paintersrp/zrt/internal/stats"
)

// Count prints the bare note count.
func (p *Printer) Count(n int) error {
	if p.format == JSON {
		return p.encode(map[string]int{"total_files": n})
	}
	_, err := fmt.Fprintln(p.w, n)
	return err
}

func (p *Printer) Pattern(s stats.PatternStats) error {
	if p.format == JSON {
		return p.encode(struct {
			Tag        string  `json:"tag"`
			Total      int     `json:"total_files"`
			Matching   int     `json:"matching_files"`
			Percentage float64 `json:"percentage"`
		}{s.Tag, s.Total, s.Matching, round2(s.Percentage())})
	}
	return p.lines(
		"Total files", s.Total,
		fmt.Sprintf("Files with pattern '%s'", s.Tag), s.Matching,
		"Percentage", percentage(s.Percentage()),
	)
}

func (p *Printer) Comparison(c stats.ComparisonStats) error {
	if p.format == JSON {
		return p.encode(struct {
			DoneTag    string  `json:"done_tag"`
			TodoTag    string  `json:"todo_tag"`
			Total      int     `json:"total_files"`
			Done       int     `json:"done_files"`
			Todo       int     `json:"todo_files"`
			Percentage float64 `json:"done_percentage"`
		}{c.DoneTag, c.TodoTag, c.Total, c.Done, c.Todo, round2(c.Percentage())})
	}
	return p.lines(
		c.DoneTag+" files", c.Done,
		c.TodoTag+" files", c.Todo,
		"Done percentage", percentage(c.Percentage()),
	)
}

func (p *Printer) Words(w stats.WordStats) error {
	if p.format == JSON {
		return p.encode(struct {
			Tag         string  `json:"tag"`
			TaggedFiles int     `json:"tagged_files"`
			TaggedWords int     `json:"tagged_words"`
			TotalFiles  int     `json:"total_files"`
			TotalWords  int     `json:"total_words"`
			Percentage  float64 `json:"percentage"`
		}{w.Tag, w.TaggedFiles, w.TaggedWords, w.TotalFiles, w.TotalWords, round2(w.Percentage())})
	}
	return p.lines(
		fmt.Sprintf("Files with tag '%s'", w.Tag), w.TaggedFiles,
		"Words in tagged files", w.TaggedWords,
		"Total files", w.TotalFiles,
		"Total words in all files", w.TotalWords,
		"Percentage of words tagged", percentage(w.Percentage()),
	)
}

// Tags prints tag frequencies.
func (p *Printer) Tags(counts []stats.TagCount) error {
	switch p.format {
	case JSON:
		type tagJSON struct {
			Tag   string `json:"tag"`
			Count int    `json:"count"`
		}
		out := make([]tagJSON, 0, len(counts))
		for _, c := range counts {
			out = append(out, tagJSON{Tag: c.Tag, Count: c.Count})
		}
		return p.encode(out)
	case Table:
		return p.tagTable(counts)
	}

	for _, c := range counts {
		if _, err := fmt.Fprintf(p.w, "%6d  %s\n", c.Count, c.Tag); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
