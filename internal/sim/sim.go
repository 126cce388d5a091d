// Package sim is the fixed-rate simulation core. A Sim owns the only mutable
// GameState and advances it one tick per Step call; it performs no I/O.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/echo-isles/internal/beat"
	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/world"
)

// Sim advances a single game.
type Sim struct {
	cfg     config.Config
	islands catalog.Catalog
	clock   beat.Clock
	factory *world.Factory

	state   world.GameState
	sched   scheduler
	pending map[string]bool // Treasure ids with a collection in flight

	lastBeat  int64
	beatSeen  bool
	scanSeq   uint64
	announced bool // EventLevelCleared already emitted for this level
}

// New validates the configuration and catalog and builds the first level.
func New(cfg config.Config, islands catalog.Catalog, seed int64) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := islands.Validate(); err != nil {
		return nil, err
	}
	clock := beat.NewClock(cfg.Beat.Interval(), cfg.Beat.Cycle)
	if err := clock.Validate(); err != nil {
		return nil, err
	}
	factory, err := world.NewFactory(cfg, islands, seed)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Sim{
		cfg:     cfg,
		islands: islands,
		clock:   clock,
		factory: factory,
		pending: make(map[string]bool),
	}
	s.state.ScannerRange = cfg.Scanner.InitialRange
	s.load(0)
	return s, nil
}

// StartAt replaces the current level with a fresh instance of the island at
// index. Score and scanner range are kept.
func (s *Sim) StartAt(index int) {
	s.load(index)
}

func (s *Sim) load(index int) {
	s.state.ApplyLevel(s.factory.Instantiate(index))
	s.state.ScannerActive = false
	s.sched.reset()
	s.announced = false
	clear(s.pending)
}

// State returns a deep copy of the current game state.
func (s *Sim) State() world.GameState {
	return s.state.Snapshot()
}

// Island returns the catalog entry of the current island.
func (s *Sim) Island() catalog.Island {
	return s.islands.At(s.state.IslandIndex)
}

// Catalog returns the island sequence.
func (s *Sim) Catalog() catalog.Catalog {
	return s.islands
}

// Clock returns the beat clock shared with presentation and audio.
func (s *Sim) Clock() beat.Clock {
	return s.clock
}

// Config returns the tuning the simulation runs with.
func (s *Sim) Config() config.Config {
	return s.cfg
}

// Pending reports whether a collection for the treasure is in flight.
func (s *Sim) Pending(id string) bool {
	return s.pending[id]
}

// InFlight returns the number of collections awaiting their merge.
func (s *Sim) InFlight() int {
	return len(s.pending)
}

// Award adds points to the score. Negative awards are ignored so the score
// never decreases.
func (s *Sim) Award(points int) {
	if points > 0 {
		s.state.Score += points
	}
}

// MarkCollected merges a resolved collection back into the state. It returns
// false when the treasure belongs to a level that has since been replaced.
func (s *Sim) MarkCollected(generation uint64, id string) bool {
	delete(s.pending, id)
	if generation != s.state.Generation {
		return false
	}
	t := s.state.Treasure(id)
	if t == nil {
		return false
	}
	t.Collected = true
	s.state.RecomputeCleared()
	return true
}

// Step advances the simulation by one tick.
func (s *Sim) Step(in core.InputFrame, now time.Time) StepResult {
	var res StepResult
	st := &s.state
	st.Tick++

	// Beat edge
	count := s.clock.Count(now)
	st.Beat = s.clock.Index(now)
	st.BeatPhase = s.clock.Phase(now)
	if !s.beatSeen || count != s.lastBeat {
		s.beatSeen = true
		s.lastBeat = count
		res.Events = append(res.Events, Event{Kind: EventBeat, Beat: st.Beat, Island: st.IslandIndex})
	}

	// Movement with beat-gated obstacles, then the bounds clamp
	st.Hiding = in.Has(core.ActionHide)
	st.Moving = false
	if !st.Hiding {
		delta := s.movement(in)
		st.Moving = in.Any(core.ActionMoveUp, core.ActionMoveDown, core.ActionMoveLeft, core.ActionMoveRight)
		if !delta.IsZero() {
			proposed := st.Player.Add(delta)
			if !s.blocked(proposed, st.BeatPhase) {
				st.Player = proposed
			}
		}
	}
	res.Moving = st.Moving
	s.clampPlayer()

	// Collect intent
	if in.Has(core.ActionCollect) {
		if t := s.nearestCollectible(); t != nil {
			s.pending[t.ID] = true
			res.Consumed = append(res.Consumed, core.ActionCollect)
			res.Events = append(res.Events, Event{
				Kind:       EventCollectMarked,
				Island:     st.IslandIndex,
				Generation: st.Generation,
				Treasure:   *t,
			})
		}
	}

	// Scanner
	if st.ScannerCooldown > 0 {
		st.ScannerCooldown--
	}
	for _, t := range s.sched.due(now) {
		if t.kind == timerScanClear && t.seq == s.scanSeq && st.ScannerActive {
			st.ScannerActive = false
			res.Events = append(res.Events, Event{Kind: EventScanEnded, Island: st.IslandIndex})
		}
	}
	if in.Has(core.ActionScan) {
		res.Consumed = append(res.Consumed, core.ActionScan)
		if st.ScannerCooldown == 0 {
			s.scanSeq++
			st.ScannerActive = true
			st.ScannerCooldown = s.cfg.Scanner.CooldownTicks
			s.sched.schedule(timer{at: now.Add(s.cfg.Scanner.Duration()), kind: timerScanClear, seq: s.scanSeq})
			res.Events = append(res.Events, Event{Kind: EventScanStarted, Island: st.IslandIndex})
		}
	}

	// Adversaries
	for i := range st.Enemies {
		st.Enemies[i].Move(now, s.cfg.Enemies, s.cfg.Field)
	}

	// Level clear
	st.RecomputeCleared()
	if st.LevelCleared && !s.announced {
		s.announced = true
		res.Events = append(res.Events, Event{Kind: EventLevelCleared, Island: st.IslandIndex, Generation: st.Generation})
	}

	// Portal
	portal := core.V(s.cfg.Portal.X, s.cfg.Portal.Y)
	if st.LevelCleared && st.Player.Dist(portal) < s.cfg.Portal.Radius {
		next := s.islands.Next(st.IslandIndex)
		st.ScannerRange += s.cfg.Scanner.RangeStep
		s.load(next)
		res.Events = append(res.Events, Event{Kind: EventIslandAdvanced, Island: next, Generation: st.Generation})
	}

	return res
}

func (s *Sim) movement(in core.InputFrame) core.Vec {
	speed := s.cfg.Player.Speed
	var d core.Vec
	if in.Has(core.ActionMoveUp) {
		d.Y -= speed
	}
	if in.Has(core.ActionMoveDown) {
		d.Y += speed
	}
	if in.Has(core.ActionMoveLeft) {
		d.X -= speed
	}
	if in.Has(core.ActionMoveRight) {
		d.X += speed
	}
	return d
}

// blocked reports whether the player hitbox at pos overlaps an obstacle that
// is solid in the given phase.
func (s *Sim) blocked(pos core.Vec, phase int) bool {
	hitbox := core.BoxAround(pos, s.cfg.Player.Hitbox)
	for _, o := range s.state.Obstacles {
		if o.Solid(phase) && hitbox.Overlaps(o.Box) {
			return true
		}
	}
	return false
}

func (s *Sim) clampPlayer() {
	m := s.cfg.Player.HalfExtent
	p := &s.state.Player
	p.X = core.ClampF(p.X, m, s.cfg.Field.Width-m)
	p.Y = core.ClampF(p.Y, m, s.cfg.Field.Height-m)
}

// nearestCollectible returns the closest uncollected treasure within pickup
// range that has no collection in flight.
func (s *Sim) nearestCollectible() *world.Treasure {
	var best *world.Treasure
	bestDist := math.Inf(1)
	for i := range s.state.Treasures {
		t := &s.state.Treasures[i]
		if t.Collected || s.pending[t.ID] {
			continue
		}
		d := s.state.Player.Dist(t.Pos)
		if d < s.cfg.Collect.PickupRadius && d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}
