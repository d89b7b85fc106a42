package parser

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Counter counts the words of a note body.
type Counter interface {
	Count(body []byte) int
}

// CounterFunc adapts a function to the Counter interface.
type CounterFunc func(body []byte) int

func (f CounterFunc) Count(body []byte) int {
	return f(body)
}

// Whitespace counts every whitespace separated token.
var Whitespace Counter = CounterFunc(func(body []byte) int {
	return len(bytes.Fields(body))
})

// ProseCounter counts only the words a reader would see in rendered
// markdown: code blocks, inline code, raw HTML and link destinations are
// skipped.
type ProseCounter struct {
	parser gmparser.Parser
}

func NewProseCounter() *ProseCounter {
	return &ProseCounter{parser: goldmark.DefaultParser()}
}

func (c *ProseCounter) Count(body []byte) int {
	document := c.parser.Parse(text.NewReader(body))

	words := 0
	ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}

			switch n := n.(type) {
			case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.CodeSpan, *ast.RawHTML:
				return ast.WalkSkipChildren, nil
			case *ast.Text:
				words += len(bytes.Fields(n.Segment.Value(body)))
			case *ast.String:
				words += len(bytes.Fields(n.Value))
			}
			return ast.WalkContinue, nil
		},
	)

	return words
}

// CounterFor maps a configured count mode to a Counter. Unknown modes fall
// back to Whitespace.
func CounterFor(mode string) Counter {
	if mode == "prose" {
		return NewProseCounter()
	}
	return Whitespace
}
