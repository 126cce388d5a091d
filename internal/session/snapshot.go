package session

import (
	"math"
	"time"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/world"
)

// Lore is the lore popup content.
type Lore struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Island   string `json:"island"`
	Treasure string `json:"treasure"`
	Category string `json:"category"`
	Fallback bool   `json:"fallback"`
}

// Gait holds the walk and arm animation phases. It only advances while the
// player moves and has no effect on the simulation.
type Gait struct {
	Walk float64 `json:"walk"`
	Arm  float64 `json:"arm"`
}

// Advance steps both phases by one moving tick.
func (g *Gait) Advance() {
	g.Walk += 0.15
	g.Arm += 0.1
}

// Legs returns the two leg offsets for a moving figure.
func (g Gait) Legs() (float64, float64) {
	return math.Sin(g.Walk) * 12, math.Sin(g.Walk+math.Pi) * 12
}

// Snapshot is an immutable view of a session for presentation.
type Snapshot struct {
	Now         time.Time       `json:"now"`
	State       world.GameState `json:"state"`
	Island      catalog.Island  `json:"island"`
	IslandCount int             `json:"island_count"`
	Lore        *Lore           `json:"lore,omitempty"`
	Loading     bool            `json:"loading"`
	Paused      bool            `json:"paused"`
	Gait        Gait            `json:"gait"`
}

// Snapshot copies the current session state.
func (s *Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Now:         now,
		State:       s.sim.State(),
		Island:      s.sim.Island(),
		IslandCount: s.sim.Catalog().Len(),
		Loading:     s.sim.InFlight() > 0,
		Paused:      s.paused,
		Gait:        s.gait,
	}
	if s.lore != nil {
		l := *s.lore
		snap.Lore = &l
	}
	return snap
}

// Progress returns the share of the island sequence restored so far, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.IslandCount == 0 {
		return 0
	}
	done := s.State.IslandIndex
	if s.State.LevelCleared {
		done++
	}
	return float64(done) / float64(s.IslandCount)
}

// Visible reports whether an uncollected treasure is revealed: within the
// reveal radius of the player, or anywhere while the scanner is active.
func (s Snapshot) Visible(t world.Treasure, revealRadius float64) bool {
	if t.Collected {
		return false
	}
	return s.State.ScannerActive || s.State.Player.Dist(t.Pos) < revealRadius
}

// ScanRadius returns the animated scanner ring radius, cycling up to the
// current scanner range.
func (s Snapshot) ScanRadius() float64 {
	r := s.State.ScannerRange
	if !s.State.ScannerActive || r <= 0 {
		return 0
	}
	return math.Mod(float64(s.Now.UnixMilli())/3, float64(r))
}
