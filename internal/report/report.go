// Package report prints listings and statistics in plain, table or json form.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Paintersrp/zrt/internal/note"
)

type Format string

const (
	Plain Format = "plain"
	Table Format = "table"
	JSON  Format = "json"
)

// Formats lists the accepted --format values.
var Formats = []Format{Plain, Table, JSON}

func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Plain, nil
	}
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want plain, table or json)", s)
}

// IsStyled reports whether output to f should carry colors.
func IsStyled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type Printer struct {
	w      io.Writer
	format Format
	styled bool
	styles styles
}

func New(w io.Writer, format Format, styled bool) *Printer {
	if format == "" {
		format = Plain
	}
	return &Printer{w: w, format: format, styled: styled, styles: newStyles(styled)}
}

type recordJSON struct {
	Path     string   `json:"path"`
	Words    int      `json:"words"`
	Tags     []string `json:"tags"`
	Modified string   `json:"modified,omitempty"`
}

// Records prints one line per record. With showWords the plain form is
// "%8d words  path"; otherwise just the path.
func (p *Printer) Records(records []note.Record, showWords bool) error {
	switch p.format {
	case JSON:
		out := make([]recordJSON, 0, len(records))
		for _, r := range records {
			rec := recordJSON{Path: r.Path, Words: r.Words, Tags: r.Tags.Sorted()}
			if !r.ModifiedAt.IsZero() {
				rec.Modified = r.ModifiedAt.UTC().Format("2006-01-02T15:04:05Z")
			}
			out = append(out, rec)
		}
		return p.encode(out)
	case Table:
		return p.recordTable(records)
	}

	for _, r := range records {
		var err error
		if showWords {
			_, err = fmt.Fprintf(p.w, "%8d words  %s\n", r.Words, r.Path)
		} else {
			_, err = fmt.Fprintln(p.w, r.Path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// line writes a "label: value" pair, styling the label when enabled.
func (p *Printer) line(label string, value any) error {
	_, err := fmt.Fprintf(p.w, "%s %v\n", p.styles.label.Render(label+":"), value)
	return err
}

func (p *Printer) lines(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := p.line(pairs[i].(string), pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func percentage(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
