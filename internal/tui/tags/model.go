// Package tags is the interactive tag frequency table.
package tags

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/zrt/internal/note"
	"github.com/Paintersrp/zrt/internal/stats"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#666666"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)
)

type keyMap struct {
	sort   key.Binding
	choose key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle order"),
		),
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "list notes"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Model struct {
	table     table.Model
	counter   *stats.TagCounter
	ascending bool
	keys      keyMap

	// Selected is the tag chosen with enter, empty when the view was quit.
	Selected string
}

func NewModel(records []note.Record, height int) Model {
	counter := stats.NewTagCounter()
	for _, r := range records {
		counter.AddRecord(r)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 4},
			{Title: "Tag", Width: 30},
			{Title: "Count", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#666666")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#0AF")).
		Bold(true)
	t.SetStyles(s)

	m := Model{table: t, counter: counter, keys: newKeyMap()}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	counts := m.counter.Sorted(m.ascending)
	rows := make([]table.Row, 0, len(counts))
	for id, c := range counts {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", id),
			c.Tag,
			fmt.Sprintf("%d", c.Count),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.GotoTop()
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.sort):
			m.ascending = !m.ascending
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.choose):
			if row := m.table.SelectedRow(); len(row) > 1 {
				m.Selected = row[1]
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	order := "descending"
	if m.ascending {
		order = "ascending"
	}
	help := helpStyle.Render(fmt.Sprintf("%s • s: toggle order • ↵: list notes • q: quit", order))
	return baseStyle.Render(m.table.View()) + "\n" + help + "\n"
}

// Run shows the table and returns the tag chosen with enter.
func Run(records []note.Record) (string, error) {
	final, err := tea.NewProgram(NewModel(records, 20)).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.Selected, nil
	}
	return "", nil
}
