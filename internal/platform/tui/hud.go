package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echo-isles/internal/session"
	"github.com/vovakirdan/echo-isles/internal/world"
)

var (
	hudTheme   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)
	hudLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValue   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	hudReady   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	hudLoading = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Blink(true)
	hudPaused  = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)

	loreMeta = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	loreHint = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// renderHUD builds the status bar: island name and theme on the left,
// score, scanner state, beat and restoration progress on the right.
func renderHUD(snap session.Snapshot, width int) string {
	name := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(snap.Island.Color)).
		Render(strings.ToUpper(snap.Island.Name))
	left := name + " " + hudTheme.Render(snap.Island.Theme)

	st := snap.State
	scan := hudReady.Render("READY")
	switch {
	case st.ScannerActive:
		scan = hudReady.Render("PULSE")
	case st.ScannerCooldown > 0:
		scan = hudValue.Render(fmt.Sprintf("%d", st.ScannerCooldown))
	}

	segments := []string{
		hudLabel.Render("SCORE ") + hudValue.Render(fmt.Sprintf("%d", st.Score)),
		hudLabel.Render("SCAN ") + scan,
		hudLabel.Render("BEAT ") + hudValue.Render(beatBar(st.Beat, st.BeatPhase)),
		hudLabel.Render("RESTORED ") + hudValue.Render(fmt.Sprintf("%d%%", int(snap.Progress()*100))),
	}
	if snap.Loading {
		segments = append([]string{hudLoading.Render("decoding echo…")}, segments...)
	}
	if snap.Paused {
		segments = append([]string{hudPaused.Render("PAUSED")}, segments...)
	}
	right := strings.Join(segments, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = name // drop the theme first
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}
	bar := lipgloss.NewStyle().Width(width).MaxWidth(width)
	if snap.Island.Background != "" {
		bar = bar.Background(lipgloss.Color(snap.Island.Background))
	}
	return bar.Render(left + strings.Repeat(" ", gap) + right)
}

// beatBar shows the beat index within its cycle with the gating phase.
func beatBar(index, phase int) string {
	mark := "♪"
	if phase == 1 {
		mark = "♫"
	}
	return fmt.Sprintf("%s%d", mark, index+1)
}

// renderLore draws the lore popup for the latest decoded echo.
func renderLore(l *session.Lore, width int) string {
	if l == nil {
		return ""
	}
	w := min(width-2, 72)
	if w < 20 {
		w = 20
	}

	border := lipgloss.Color("14")
	if c, err := world.ParseCategory(l.Category); err == nil {
		border = lipgloss.Color(string(c.Color()))
	}
	title := lipgloss.NewStyle().Bold(true)
	if l.Fallback {
		title = title.Foreground(lipgloss.Color("245"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title.Render(l.Title),
		loreMeta.Render(fmt.Sprintf("%s · %s · %s", l.Island, l.Treasure, l.Category)),
		"",
		l.Content,
		"",
		loreHint.Render("enter to close"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(w - 2).
		Render(body)
}
