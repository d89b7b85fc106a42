// Package fzf lets the user pick one note out of a listing.
package fzf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/zrt/internal/cache"
	"github.com/Paintersrp/zrt/internal/note"
	"github.com/Paintersrp/zrt/internal/parser"
)

const previewCacheBytes = 4 << 20

// ErrNoSelection is returned when the finder was aborted.
var ErrNoSelection = errors.New("no note selected")

// Picker runs a fuzzy finder over records with a markdown preview.
type Picker struct {
	Header string
	Query  string

	records  []note.Record
	load     func(path string) ([]byte, error)
	renderer *glamour.TermRenderer
	previews *cache.LRU
}

// NewPicker builds a picker. load reads a note for the preview pane and
// defaults to os.ReadFile.
func NewPicker(records []note.Record, load func(path string) ([]byte, error)) *Picker {
	if load == nil {
		load = os.ReadFile
	}
	return &Picker{records: records, load: load, previews: cache.NewLRU(previewCacheBytes)}
}

// Pick shows the finder and returns the chosen record.
func (p *Picker) Pick() (note.Record, error) {
	if len(p.records) == 0 {
		return note.Record{}, ErrNoSelection
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(p.preview),
	}
	if p.Query != "" {
		options = append(options, fuzzyfinder.WithQuery(p.Query))
	}
	if p.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(p.Header))
	}

	idx, err := fuzzyfinder.Find(p.records, p.label, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return note.Record{}, ErrNoSelection
		}
		return note.Record{}, fmt.Errorf("error selecting note: %w", err)
	}

	return p.records[idx], nil
}

func (p *Picker) label(i int) string {
	r := p.records[i]
	if r.Tags.Len() == 0 {
		return fmt.Sprintf("%s [No tags] (%d words)", r.Path, r.Words)
	}
	return fmt.Sprintf(
		"%s [Tags: %s] (%d words)",
		r.Path,
		strings.Join(r.Tags.Sorted(), ", "),
		r.Words,
	)
}

func (p *Picker) preview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	path := p.records[i].Path
	if markdown, ok := p.previews.Get(path); ok {
		return markdown
	}

	content, err := p.load(path)
	if err != nil {
		return "Error reading file"
	}
	if _, body, ok := parser.SplitFrontMatter(content); ok {
		content = body
	}

	if p.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dracula"),
			glamour.WithWordWrap(100),
			glamour.WithColorProfile(termenv.ANSI256),
		)
		if err != nil {
			return "Error rendering markdown"
		}
		p.renderer = r
	}

	markdown, err := p.renderer.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	p.previews.Put(path, markdown)
	return markdown
}
