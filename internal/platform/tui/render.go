package tui

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/session"
)

// Field glyphs.
const (
	glyphSolid    = '█'
	glyphFaded    = '░'
	glyphPlayer   = '@'
	glyphHidden   = '◌'
	glyphPortal   = '◎'
	glyphPortalRi = '∙'
	glyphScan     = '·'
	ringSteps     = 72
)

var (
	styleMu sync.Mutex
	styles  = map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
)

// colorStyle returns the foreground style for a color token. Island
// colors arrive at runtime, so styles are built on first use.
func colorStyle(c core.Color) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()
	st, ok := styles[c]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
		styles[c] = st
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(colorStyle(color).Render(run.String()))
		}
	}
	return sb.String()
}

// viewport maps field units onto a cell rectangle of the screen.
type viewport struct {
	area   core.Rect
	fw, fh float64
}

func (v viewport) cell(p core.Vec) (int, int) {
	x := v.area.X + int(p.X/v.fw*float64(v.area.W))
	y := v.area.Y + int(p.Y/v.fh*float64(v.area.H))
	return clampInt(x, v.area.X, v.area.Right()-1), clampInt(y, v.area.Y, v.area.Bottom()-1)
}

func (v viewport) rect(b core.Box) core.Rect {
	x1, y1 := v.cell(core.V(b.X, b.Y))
	x2, y2 := v.cell(core.V(b.Right(), b.Bottom()))
	return core.NewRect(x1, y1, max(x2-x1, 1), max(y2-y1, 1))
}

// ring plots a circle of field radius r around c.
func (v viewport) ring(s *core.Screen, c core.Vec, r float64, glyph rune, color core.Color) {
	if r <= 0 {
		return
	}
	for i := range ringSteps {
		a := float64(i) / ringSteps * 2 * math.Pi
		p := core.V(c.X+math.Cos(a)*r, c.Y+math.Sin(a)*r)
		if p.X < 0 || p.Y < 0 || p.X > v.fw || p.Y > v.fh {
			continue
		}
		x, y := v.cell(p)
		s.SetColored(x, y, glyph, color)
	}
}

// drawField paints the play field for a snapshot: border, beat obstacles,
// portal, scanner ring, revealed treasures, adversaries, then the player.
func drawField(s *core.Screen, snap session.Snapshot, cfg config.Config) {
	s.Clear()
	if s.Width() < 3 || s.Height() < 3 {
		return
	}
	accent := core.Color(snap.Island.Color)
	s.DrawBox(core.NewRect(0, 0, s.Width(), s.Height()), accent)

	v := viewport{
		area: core.NewRect(1, 1, s.Width()-2, s.Height()-2),
		fw:   cfg.Field.Width,
		fh:   cfg.Field.Height,
	}
	st := snap.State

	for _, o := range st.Obstacles {
		if o.Solid(st.BeatPhase) {
			s.DrawRect(v.rect(o.Box), glyphSolid, accent)
		} else {
			s.DrawRect(v.rect(o.Box), glyphFaded, core.ColorGray)
		}
	}

	if st.LevelCleared {
		portal := core.V(cfg.Portal.X, cfg.Portal.Y)
		v.ring(s, portal, cfg.Portal.Radius, glyphPortalRi, core.ColorBrightCyan)
		x, y := v.cell(portal)
		s.SetColored(x, y, glyphPortal, core.ColorBrightCyan)
	}

	v.ring(s, st.Player, snap.ScanRadius(), glyphScan, core.ColorCyan)

	for _, t := range st.Treasures {
		if !snap.Visible(t, cfg.Collect.RevealRadius) {
			continue
		}
		x, y := v.cell(t.Pos)
		s.SetColored(x, y, t.Category.Glyph(), t.Category.Color())
	}

	for _, e := range st.Enemies {
		x, y := v.cell(e.Pos)
		s.SetColored(x, y, e.Behavior.Glyph(), core.ColorRed)
	}

	x, y := v.cell(st.Player)
	if st.Hiding {
		s.SetColored(x, y, glyphHidden, core.ColorGray)
		return
	}
	s.SetColored(x, y, glyphPlayer, core.ColorBrightWhite)
	if st.Moving && y+1 < v.area.Bottom() {
		s.SetColored(x, y+1, legGlyph(snap.Gait), core.ColorBrightWhite)
	}
}

// legGlyph picks the stride drawn under a walking player.
func legGlyph(g session.Gait) rune {
	left, right := g.Legs()
	if left > right {
		return '╱'
	}
	return '╲'
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
