package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/session"
	"github.com/vovakirdan/echo-isles/internal/world"
)

func TestViewportCell(t *testing.T) {
	v := viewport{area: core.NewRect(1, 1, 80, 30), fw: 800, fh: 600}

	tests := []struct {
		name string
		p    core.Vec
		x, y int
	}{
		{"origin", core.V(0, 0), 1, 1},
		{"center", core.V(400, 300), 41, 16},
		{"far corner clamps", core.V(800, 600), 80, 30},
		{"outside clamps", core.V(-50, 900), 1, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.cell(tt.p)
			if x != tt.x || y != tt.y {
				t.Errorf("cell(%v) = (%d, %d), expected (%d, %d)", tt.p, x, y, tt.x, tt.y)
			}
		})
	}

	r := v.rect(core.Box{X: 0, Y: 0, W: 1, H: 1})
	if r.W != 1 || r.H != 1 {
		t.Errorf("rect() of a tiny box = %dx%d, expected at least one cell", r.W, r.H)
	}
}

func testSnapshot() session.Snapshot {
	return session.Snapshot{
		Now:         time.UnixMilli(0),
		Island:      catalog.Default().At(0),
		IslandCount: catalog.Default().Len(),
		State: world.GameState{
			Player:       core.V(400, 300),
			ScannerRange: 200,
			Treasures: []world.Treasure{
				{ID: "near", Pos: core.V(450, 300), Category: world.CategoryRelic},
				{ID: "far", Pos: core.V(50, 50), Category: world.CategoryScroll},
			},
			Enemies: []world.Enemy{
				{ID: "e0", Pos: core.V(600, 500), Behavior: world.BehaviorSweep},
			},
			Obstacles: []world.Obstacle{
				{ID: "o0", Box: core.Box{X: 200, Y: 100, W: 40, H: 40}, Phase: 0},
				{ID: "o1", Box: core.Box{X: 300, Y: 100, W: 40, H: 40}, Phase: 1},
			},
		},
	}
}

func countRune(s *core.Screen, r rune) int {
	return strings.Count(s.String(), string(r))
}

func TestDrawField(t *testing.T) {
	cfg := config.DefaultConfig()
	screen := core.NewScreen(82, 32)
	snap := testSnapshot()

	drawField(screen, snap, cfg)

	if got := screen.Get(41, 16); got != glyphPlayer {
		t.Errorf("player cell = %q, expected %q", got, glyphPlayer)
	}
	if countRune(screen, world.CategoryRelic.Glyph()) != 1 {
		t.Error("a treasure inside the reveal radius should be drawn")
	}
	if countRune(screen, world.CategoryScroll.Glyph()) != 0 {
		t.Error("a distant treasure should stay hidden without a scan")
	}
	if countRune(screen, world.BehaviorSweep.Glyph()) != 1 {
		t.Error("adversary not drawn")
	}
	if countRune(screen, glyphSolid) == 0 || countRune(screen, glyphFaded) == 0 {
		t.Error("expected one solid and one faded obstacle in phase 0")
	}
	if countRune(screen, glyphPortal) != 0 {
		t.Error("portal should not show before the level is cleared")
	}
}

func TestDrawFieldScanAndPortal(t *testing.T) {
	cfg := config.DefaultConfig()
	screen := core.NewScreen(82, 32)
	snap := testSnapshot()
	snap.Now = time.UnixMilli(300) // ring radius 100
	snap.State.ScannerActive = true
	snap.State.LevelCleared = true

	drawField(screen, snap, cfg)

	if countRune(screen, world.CategoryScroll.Glyph()) != 1 {
		t.Error("an active scan should reveal every uncollected treasure")
	}
	if countRune(screen, glyphScan) == 0 {
		t.Error("scanner ring not drawn")
	}
	if countRune(screen, glyphPortal) != 1 {
		t.Error("portal should show once the level is cleared")
	}
}

func TestDrawFieldHiding(t *testing.T) {
	screen := core.NewScreen(82, 32)
	snap := testSnapshot()
	snap.State.Hiding = true

	drawField(screen, snap, config.DefaultConfig())

	if got := screen.Get(41, 16); got != glyphHidden {
		t.Errorf("hidden player cell = %q, expected %q", got, glyphHidden)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.Color("#15803d"))
	s.DrawText(0, 1, "ef")

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "ef"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() should produce 2 rows, got %q", out)
	}
}

func TestLegGlyphAlternates(t *testing.T) {
	var g session.Gait
	first := legGlyph(g)
	seen := false
	for range 40 {
		g.Advance()
		if legGlyph(g) != first {
			seen = true
			break
		}
	}
	if !seen {
		t.Error("gait should alternate the stride glyph while walking")
	}
}

func TestRenderHUD(t *testing.T) {
	snap := testSnapshot()
	snap.State.Score = 1500
	snap.State.ScannerCooldown = 42
	snap.Loading = true
	snap.Paused = true

	out := renderHUD(snap, 160)
	for _, want := range []string{strings.ToUpper(snap.Island.Name), "1500", "42", "RESTORED", "0%", "PAUSED", "decoding"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderHUD() = %q, missing %q", out, want)
		}
	}
}

func TestRenderLore(t *testing.T) {
	if renderLore(nil, 80) != "" {
		t.Error("no lore should render nothing")
	}
	out := renderLore(&session.Lore{
		Title:    "The Tide Bell",
		Content:  "It rings under water.",
		Island:   "Coral Drums",
		Treasure: "Echo Charm",
		Category: "relic",
	}, 80)
	for _, want := range []string{"The Tide Bell", "It rings under water.", "Echo Charm"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderLore() missing %q in %q", want, out)
		}
	}
}
