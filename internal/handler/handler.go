// Package handler runs the scan and extract stages that turn a note root into
// records.
package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Paintersrp/zrt/internal/note"
	"github.com/Paintersrp/zrt/internal/parser"
	"github.com/Paintersrp/zrt/internal/scanner"
)

type Handler struct {
	scanner *scanner.Scanner
	counter parser.Counter
	logger  *log.Logger
}

// New builds a handler. A nil counter splits on whitespace and a nil logger
// discards output.
func New(s *scanner.Scanner, counter parser.Counter, logger *log.Logger) *Handler {
	if counter == nil {
		counter = parser.Whitespace
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{scanner: s, counter: counter, logger: logger}
}

// SkipLogger returns a scanner OnSkip callback that reports skipped entries
// as warnings.
func SkipLogger(logger *log.Logger) func(path string, err error) {
	return func(path string, err error) {
		if logger != nil {
			logger.Warn("skipping unreadable note", "path", path, "err", err)
		}
	}
}

// Records reads every note under the root and returns them in scan order.
// Notes that cannot be read are skipped; only root failures are returned.
func (h *Handler) Records(ctx context.Context) ([]note.Record, error) {
	var records []note.Record

	err := h.scanner.Walk(ctx, func(e scanner.Entry) error {
		content, err := e.Read(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			h.logger.Warn("skipping unreadable note", "path", e.Path, "err", err)
			return nil
		}

		meta := parser.Extract(content, h.counter)
		if meta.Malformed {
			h.logger.Debug("malformed front matter", "path", e.Path)
		}

		records = append(records, note.Record{
			Path:       e.Path,
			Tags:       meta.Tags,
			Words:      meta.Words,
			ModifiedAt: e.ModTime,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("scan complete", "root", h.scanner.Root(), "notes", len(records))
	return records, nil
}

// Count returns the number of notes under the root without reading them.
func (h *Handler) Count(ctx context.Context) (int, error) {
	count := 0
	err := h.scanner.Walk(ctx, func(scanner.Entry) error {
		count++
		return nil
	})
	return count, err
}

// Loader walks the root once and returns a function that reads a note by the
// path reported in its record. It serves remote roots where paths are not
// local files.
func (h *Handler) Loader(ctx context.Context) (func(path string) ([]byte, error), error) {
	entries := make(map[string]scanner.Entry)
	err := h.scanner.Walk(ctx, func(e scanner.Entry) error {
		entries[e.Path] = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return func(path string) ([]byte, error) {
		e, ok := entries[path]
		if !ok {
			return nil, fmt.Errorf("unknown note %s", path)
		}
		return e.Read(ctx)
	}, nil
}
