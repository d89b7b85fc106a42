package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Paintersrp/zrt/internal/note"
	"github.com/Paintersrp/zrt/internal/stats"
)

type styles struct {
	label  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	number lipgloss.Style
	border lipgloss.Style
}

func newStyles(styled bool) styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return styles{
			label:  plain,
			header: plain.Padding(0, 1),
			cell:   plain.Padding(0, 1),
			number: plain.Padding(0, 1).Align(lipgloss.Right),
			border: plain,
		}
	}

	return styles{
		label: lipgloss.NewStyle().
			Bold(true),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF")).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Padding(0, 1),
		number: lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right),
		border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}

func (p *Printer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.border).
		Headers(headers...)
}

func (p *Printer) recordTable(records []note.Record) error {
	t := p.newTable("WORDS", "TAGS", "PATH").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.styles.header
			case col == 0:
				return p.styles.number
			default:
				return p.styles.cell
			}
		})

	for _, r := range records {
		t.Row(strconv.Itoa(r.Words), strings.Join(r.Tags.Sorted(), ", "), r.Path)
	}

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}

func (p *Printer) tagTable(counts []stats.TagCount) error {
	t := p.newTable("COUNT", "TAG").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.styles.header
			case col == 0:
				return p.styles.number
			default:
				return p.styles.cell
			}
		})

	for _, c := range counts {
		t.Row(strconv.Itoa(c.Count), c.Tag)
	}

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}
