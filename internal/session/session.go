// Package session owns a running game: the simulation, its input adapter,
// and the adapters that react to simulation events. Every state change goes
// through Tick on a single goroutine.
package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/input"
	"github.com/vovakirdan/echo-isles/internal/narrative"
	"github.com/vovakirdan/echo-isles/internal/sim"
	"github.com/vovakirdan/echo-isles/internal/storage"
)

// Cues receives audio cues. Implementations must not block.
type Cues interface {
	Beat(index int, isl catalog.Island)
	Scan()
	Fanfare()
}

// Publisher receives a snapshot after committed ticks.
type Publisher interface {
	Publish(Snapshot)
}

// Options configures a Session. A nil Fetcher uses offline lore; other nil
// collaborators are skipped.
type Options struct {
	Seed         int64
	StartIsland  int
	Fetcher      narrative.Fetcher
	Cues         Cues
	Journal      *storage.Journal
	Publisher    Publisher
	PublishEvery int // Ticks between publishes; zero publishes every tick
	Logger       *log.Logger
}

// Session runs one game. It is not safe for concurrent use.
type Session struct {
	cfg        config.Config
	sim        *sim.Sim
	input      *input.Adapter
	dispatcher *narrative.Dispatcher
	cues       Cues
	journal    *storage.Journal
	publisher  Publisher
	every      uint64
	logger     *log.Logger

	ticks  uint64
	lore   *Lore
	gait   Gait
	paused bool
}

// New creates a session on the given tuning and catalog.
func New(cfg config.Config, islands catalog.Catalog, opts Options) (*Session, error) {
	s, err := sim.New(cfg, islands, opts.Seed)
	if err != nil {
		return nil, err
	}
	if opts.StartIsland != 0 {
		s.StartAt(opts.StartIsland)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = narrative.NewOffline(opts.Seed, 0)
	}
	every := opts.PublishEvery
	if every < 1 {
		every = 1
	}

	return &Session{
		cfg:        cfg,
		sim:        s,
		input:      input.NewAdapter(cfg.Input.HoldTicks),
		dispatcher: narrative.NewDispatcher(fetcher, cfg.Narrative.Timeout(), 16, logger),
		cues:       opts.Cues,
		journal:    opts.Journal,
		publisher:  opts.Publisher,
		every:      uint64(every),
		logger:     logger,
	}, nil
}

// Press records a key press or repeat for a control intent.
func (s *Session) Press(a core.Action) {
	s.input.Press(a, s.ticks+1)
}

// Release drops a held intent, for surfaces that report key-up events.
func (s *Session) Release(a core.Action) {
	s.input.Release(a)
}

// SetPaused freezes or resumes the simulation. Held keys are dropped.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
	s.input.ReleaseAll()
}

// Paused reports whether the simulation is frozen.
func (s *Session) Paused() bool {
	return s.paused
}

// DismissLore hides the lore popup.
func (s *Session) DismissLore() {
	s.lore = nil
}

// Tick merges resolved lore, advances the simulation one step, and
// dispatches the step's side effects. It never waits on a fetch.
func (s *Session) Tick(now time.Time) Snapshot {
	if s.paused {
		return s.Snapshot(now)
	}

	for _, r := range s.dispatcher.Drain() {
		s.merge(r)
	}

	s.ticks++
	res := s.sim.Step(s.input.Frame(s.ticks), now)
	s.input.Consume(res.Consumed...)
	if res.Moving {
		s.gait.Advance()
	}
	for _, e := range res.Events {
		s.handle(e)
	}

	snap := s.Snapshot(now)
	if s.publisher != nil && s.ticks%s.every == 0 {
		s.publisher.Publish(snap)
	}
	return snap
}

func (s *Session) handle(e sim.Event) {
	switch e.Kind {
	case sim.EventBeat:
		if s.cues != nil {
			s.cues.Beat(e.Beat, s.sim.Catalog().At(e.Island))
		}
	case sim.EventScanStarted:
		if s.cues != nil {
			s.cues.Scan()
		}
	case sim.EventCollectMarked:
		s.sim.Award(s.cfg.Collect.Reward)
		if s.cues != nil {
			s.cues.Fanfare()
		}
		isl := s.sim.Catalog().At(e.Island)
		s.dispatcher.Dispatch(narrative.Ticket{
			Generation:   e.Generation,
			TreasureID:   e.Treasure.ID,
			TreasureName: e.Treasure.Name,
			Island:       isl.Name,
			IslandIndex:  e.Island,
			Category:     e.Treasure.Category.String(),
			Tick:         s.ticks,
		})
		s.logger.Debug("treasure marked", "id", e.Treasure.ID, "category", e.Treasure.Category)
	case sim.EventLevelCleared:
		s.logger.Info("level cleared", "island", s.sim.Catalog().At(e.Island).Name)
	case sim.EventIslandAdvanced:
		if s.cues != nil {
			s.cues.Fanfare()
		}
		s.logger.Info("island advanced", "island", s.sim.Catalog().At(e.Island).Name, "generation", e.Generation)
	}
}

// merge applies a resolved fetch. Lore is shown even when the level it
// belongs to has been replaced; only the collected flag is dropped then.
func (s *Session) merge(r narrative.Result) {
	applied := s.sim.MarkCollected(r.Ticket.Generation, r.Ticket.TreasureID)
	if !applied {
		s.logger.Debug("stale lore merge", "treasure", r.Ticket.TreasureID, "generation", r.Ticket.Generation)
	}

	s.lore = &Lore{
		Title:    r.Lore.Title,
		Content:  r.Lore.Content,
		Island:   r.Ticket.Island,
		Treasure: r.Ticket.TreasureName,
		Category: r.Ticket.Category,
		Fallback: r.Fallback,
	}

	if s.journal == nil {
		return
	}
	_, err := s.journal.Record(storage.Entry{
		Tick:         s.ticks,
		IslandIndex:  r.Ticket.IslandIndex,
		Island:       r.Ticket.Island,
		TreasureID:   r.Ticket.TreasureID,
		TreasureName: r.Ticket.TreasureName,
		Category:     r.Ticket.Category,
		Title:        r.Lore.Title,
		Content:      r.Lore.Content,
		Fallback:     r.Fallback,
		Stale:        !applied,
	})
	if err != nil {
		s.logger.Warn("could not record lore", "error", err)
	}
}

// Journal returns the lore journal, or nil when the session keeps none.
func (s *Session) Journal() *storage.Journal {
	return s.journal
}

// Config returns the session tuning.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Close cancels outstanding fetches.
func (s *Session) Close() {
	s.dispatcher.Close()
}
