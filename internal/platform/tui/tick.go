package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. It carries the wall-clock time the
// step is simulated at.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at the given rate (ticks per second).
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(tickInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval converts a tick rate to a period. Non-positive rates fall
// back to 60 Hz.
func tickInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
