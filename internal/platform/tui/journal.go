package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echo-isles/internal/storage"
)

// journalLimit caps how many entries the journal view loads.
const journalLimit = 200

var (
	journalTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).MarginBottom(1)
	journalEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// journalView lists the lore decoded this session.
type journalView struct {
	table   table.Model
	entries []storage.Entry
	err     error
}

// newJournalView loads the journal newest first. A nil journal shows an
// empty view.
func newJournalView(j *storage.Journal, width, height int) journalView {
	var jv journalView
	if j != nil {
		jv.entries, jv.err = j.Entries(journalLimit)
	}

	rows := make([]table.Row, 0, len(jv.entries))
	for _, e := range jv.entries {
		title := e.Title
		if e.Stale {
			title += " (late)"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.Tick),
			e.Island,
			e.TreasureName,
			e.Category,
			title,
		})
	}

	t := table.New(
		table.WithColumns(journalColumns(width)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height-6, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("30"))
	t.SetStyles(s)
	jv.table = t
	return jv
}

// journalColumns splits the available width, giving the title the rest.
func journalColumns(width int) []table.Column {
	title := max(width-8-14-16-9-12, 16)
	return []table.Column{
		{Title: "Tick", Width: 8},
		{Title: "Island", Width: 14},
		{Title: "Treasure", Width: 16},
		{Title: "Kind", Width: 9},
		{Title: "Title", Width: title},
	}
}

func (jv journalView) Update(msg tea.Msg) (journalView, tea.Cmd) {
	var cmd tea.Cmd
	jv.table, cmd = jv.table.Update(msg)
	return jv, cmd
}

// Selected returns the highlighted entry.
func (jv journalView) Selected() (storage.Entry, bool) {
	i := jv.table.Cursor()
	if i < 0 || i >= len(jv.entries) {
		return storage.Entry{}, false
	}
	return jv.entries[i], true
}

func (jv journalView) View(width int) string {
	header := journalTitle.Render(fmt.Sprintf("ECHO JOURNAL  %d decoded", len(jv.entries)))
	switch {
	case jv.err != nil:
		return lipgloss.JoinVertical(lipgloss.Left, header, journalEmpty.Render("journal unavailable: "+jv.err.Error()))
	case len(jv.entries) == 0:
		return lipgloss.JoinVertical(lipgloss.Left, header, journalEmpty.Render("No echoes decoded yet. Collect a treasure."))
	}

	parts := []string{header, jv.table.View()}
	if e, ok := jv.Selected(); ok {
		content := lipgloss.NewStyle().Width(max(width-2, 20)).Render(e.Content)
		parts = append(parts, "", content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
