package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/echo-isles/internal/core"
)

// KeyMap holds the game key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Scan    key.Binding
	Hide    key.Binding
	Collect key.Binding
	Dismiss key.Binding
	Pause   key.Binding
	Journal key.Binding
	Mute    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings: WASD or arrows to move,
// q scans, e hides, space collects.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Scan: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "scan"),
		),
		Hide: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "hide"),
		),
		Collect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "collect"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "close lore"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Journal: key.NewBinding(
			key.WithKeys("j", "tab"),
			key.WithHelp("j", "journal"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scan, k.Hide, k.Collect, k.Journal, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Scan, k.Hide, k.Collect, k.Dismiss},
		{k.Pause, k.Journal, k.Mute, k.Quit},
	}
}

// Action maps a key press to the control intent it holds, if any.
func (k KeyMap) Action(msg tea.KeyMsg) (core.Action, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionMoveUp, true
	case key.Matches(msg, k.Down):
		return core.ActionMoveDown, true
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft, true
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight, true
	case key.Matches(msg, k.Scan):
		return core.ActionScan, true
	case key.Matches(msg, k.Hide):
		return core.ActionHide, true
	case key.Matches(msg, k.Collect):
		return core.ActionCollect, true
	}
	return core.ActionNone, false
}
