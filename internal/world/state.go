package world

import (
	"slices"

	"github.com/vovakirdan/echo-isles/internal/core"
)

// GameState is the single mutable root of a running game. Only the
// simulation mutates it; everyone else works on Snapshot copies.
type GameState struct {
	Tick        uint64 `json:"tick"`
	IslandIndex int    `json:"island_index"`
	Generation  uint64 `json:"generation"`

	Player core.Vec `json:"player"`
	Score  int      `json:"score"`
	Hiding bool     `json:"hiding"`
	Moving bool     `json:"moving"`

	ScannerActive   bool `json:"scanner_active"`
	ScannerCooldown int  `json:"scanner_cooldown"`
	ScannerRange    int  `json:"scanner_range"`

	Beat      int `json:"beat"`
	BeatPhase int `json:"beat_phase"`

	Treasures []Treasure `json:"treasures"`
	Enemies   []Enemy    `json:"enemies"`
	Obstacles []Obstacle `json:"obstacles"`

	LevelCleared bool `json:"level_cleared"`
}

// ApplyLevel replaces every per-level entity set and the player position.
// Score and scanner range carry over.
func (s *GameState) ApplyLevel(l Level) {
	s.IslandIndex = l.Island
	s.Generation = l.Generation
	s.Player = l.PlayerStart
	s.Treasures = l.Treasures
	s.Enemies = l.Enemies
	s.Obstacles = l.Obstacles
	s.LevelCleared = false
}

// RecomputeCleared derives LevelCleared from the treasure set. It is the only
// place the flag is written outside ApplyLevel.
func (s *GameState) RecomputeCleared() {
	for _, t := range s.Treasures {
		if !t.Collected {
			s.LevelCleared = false
			return
		}
	}
	s.LevelCleared = true
}

// Treasure returns a pointer to the treasure with the given id, or nil.
func (s *GameState) Treasure(id string) *Treasure {
	for i := range s.Treasures {
		if s.Treasures[i].ID == id {
			return &s.Treasures[i]
		}
	}
	return nil
}

// Collected returns how many treasures of the current level are collected.
func (s *GameState) Collected() int {
	n := 0
	for _, t := range s.Treasures {
		if t.Collected {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy safe to hand to other goroutines.
func (s *GameState) Snapshot() GameState {
	c := *s
	c.Treasures = slices.Clone(s.Treasures)
	c.Enemies = slices.Clone(s.Enemies)
	c.Obstacles = slices.Clone(s.Obstacles)
	return c
}
