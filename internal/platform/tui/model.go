package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/session"
)

// Minimum terminal size for the field view.
const (
	minWidth  = 40
	minHeight = 12
)

// Muter toggles audio output.
type Muter interface {
	SetMuted(bool)
	Muted() bool
}

// Options configures the game model.
type Options struct {
	FPS    int
	Width  int
	Height int
	Muter  Muter            // Optional; the mute key does nothing without one
	Clock  func() time.Time // Optional; ticks use the TickMsg time otherwise
}

// Model is the Bubble Tea model for a running Echo Isles session.
type Model struct {
	session *session.Session
	cfg     config.Config
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	journal journalView
	opts    Options

	snap        session.Snapshot
	width       int
	height      int
	showJournal bool
	quitting    bool
}

// NewModel creates a model driving the given session.
func NewModel(sess *session.Session, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	m := Model{
		session: sess,
		cfg:     sess.Config(),
		screen:  core.NewScreen(opts.Width, opts.Height),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		opts:    opts,
		width:   opts.Width,
		height:  opts.Height,
	}
	m.help.Width = opts.Width
	m.snap = sess.Snapshot(m.now(time.Now()))
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showJournal {
			return m.handleJournalKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showJournal {
			m.journal = newJournalView(m.session.Journal(), m.width, m.height)
		}
		return m, nil

	case TickMsg:
		m.snap = m.session.Tick(m.now(time.Time(msg)))
		return m, tickCmd(m.opts.FPS)
	}

	return m, nil
}

func (m Model) now(t time.Time) time.Time {
	if m.opts.Clock != nil {
		return m.opts.Clock()
	}
	return t
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.session.SetPaused(!m.session.Paused())
		m.snap.Paused = m.session.Paused()
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.session.DismissLore()
		m.snap.Lore = nil
		return m, nil
	case key.Matches(msg, m.keys.Journal):
		m.showJournal = true
		m.journal = newJournalView(m.session.Journal(), m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		if m.opts.Muter != nil {
			m.opts.Muter.SetMuted(!m.opts.Muter.Muted())
		}
		return m, nil
	}

	if a, ok := m.keys.Action(msg); ok && !m.session.Paused() {
		m.session.Press(a)
	}
	return m, nil
}

// handleJournalKey routes keys to the journal table. The simulation keeps
// ticking underneath.
func (m Model) handleJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Journal), msg.String() == "esc":
		m.showJournal = false
		return m, nil
	}
	var cmd tea.Cmd
	m.journal, cmd = m.journal.Update(msg)
	return m, cmd
}

// Snapshot returns the latest rendered snapshot.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	helpView := m.help.View(m.keys)

	if m.showJournal {
		return lipgloss.JoinVertical(lipgloss.Left, m.journal.View(m.width), "", helpView)
	}
	if m.width < minWidth || m.height < minHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			"Echo Isles needs a larger terminal")
	}

	hud := renderHUD(m.snap, m.width)
	lore := renderLore(m.snap.Lore, m.width)

	fieldH := m.height - lipgloss.Height(hud) - lipgloss.Height(helpView)
	if lore != "" {
		fieldH -= lipgloss.Height(lore)
	}
	fieldH = max(fieldH, 3)

	m.screen.Resize(m.width, fieldH)
	drawField(m.screen, m.snap, m.cfg)

	parts := []string{hud, RenderScreen(m.screen)}
	if lore != "" {
		parts = append(parts, lore)
	}
	parts = append(parts, helpView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run starts the Bubble Tea program for a session and blocks until the
// player quits.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(NewModel(sess, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
