package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/narrative"
	"github.com/vovakirdan/echo-isles/internal/storage"
)

// nearStartConfig places every treasure within pickup range of the start.
func nearStartConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Treasures = []config.TreasureSpec{
		{X: 80, Y: 300, Category: "crystal", Name: "Deep Bass"},
		{X: 90, Y: 300, Category: "relic", Name: "Echo Charm"},
		{X: 100, Y: 300, Category: "scroll", Name: "Island History"},
	}
	return cfg
}

func newTestSession(t *testing.T, cfg config.Config, opts Options) *Session {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s, err := New(cfg, catalog.Default(), opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// tickUntil ticks until cond holds or the deadline passes.
func tickUntil(t *testing.T, s *Session, clock *time.Time, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		*clock = clock.Add(16 * time.Millisecond)
		snap := s.Tick(*clock)
		if cond(snap) {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached")
	return Snapshot{}
}

type recordingCues struct {
	beats    []int
	scans    int
	fanfares int
}

func (c *recordingCues) Beat(index int, _ catalog.Island) { c.beats = append(c.beats, index) }
func (c *recordingCues) Scan()                           { c.scans++ }
func (c *recordingCues) Fanfare()                        { c.fanfares++ }

type countingPublisher struct {
	snaps []Snapshot
}

func (p *countingPublisher) Publish(s Snapshot) { p.snaps = append(p.snaps, s) }

func TestFallbackCollectionNeverBlocks(t *testing.T) {
	failing := narrative.FetcherFunc(func(ctx context.Context, req narrative.Request) (narrative.Lore, error) {
		return narrative.Lore{}, errors.New("service unreachable")
	})
	s := newTestSession(t, nearStartConfig(), Options{Seed: 1, Fetcher: failing})
	clock := time.UnixMilli(0)

	s.Press(core.ActionCollect)
	clock = clock.Add(16 * time.Millisecond)
	snap := s.Tick(clock)
	if snap.State.Score != 500 {
		t.Errorf("Score = %d after dispatch, expected 500", snap.State.Score)
	}
	if !snap.Loading {
		t.Error("snapshot should show a fetch in flight")
	}

	snap = tickUntil(t, s, &clock, func(sn Snapshot) bool { return sn.Lore != nil })
	if snap.Lore.Title != narrative.Fallback.Title || snap.Lore.Content != narrative.Fallback.Content || !snap.Lore.Fallback {
		t.Errorf("lore = %+v, expected the fallback pair", snap.Lore)
	}
	if !snap.State.Treasures[0].Collected {
		t.Error("treasure should be collected despite the failed fetch")
	}
	if snap.Loading {
		t.Error("loading marker should clear after the merge")
	}

	s.DismissLore()
	if s.Snapshot(clock).Lore != nil {
		t.Error("DismissLore should hide the popup")
	}
}

func TestTicksContinueWhileFetchPending(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := narrative.FetcherFunc(func(ctx context.Context, req narrative.Request) (narrative.Lore, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return narrative.Lore{}, ctx.Err()
	})
	cfg := nearStartConfig()
	cfg.Narrative.TimeoutMS = 60 * 60 * 1000
	s := newTestSession(t, cfg, Options{Seed: 1, Fetcher: slow})

	s.Press(core.ActionCollect)
	start := time.Now()
	clock := time.UnixMilli(0)
	for i := range 30 {
		clock = clock.Add(16 * time.Millisecond)
		snap := s.Tick(clock)
		if snap.State.Tick != uint64(i+1) {
			t.Fatalf("tick %d reported state tick %d", i+1, snap.State.Tick)
		}
	}
	if time.Since(start) > time.Second {
		t.Error("ticks waited on the pending fetch")
	}
	if snap := s.Snapshot(clock); !snap.Loading || snap.State.Treasures[0].Collected {
		t.Error("treasure should stay in flight until the fetch resolves")
	}
}

func TestThreeCollectsClearLevel(t *testing.T) {
	journal, err := storage.OpenJournal()
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	cues := &recordingCues{}
	s := newTestSession(t, nearStartConfig(), Options{Seed: 1, Cues: cues, Journal: journal})
	clock := time.UnixMilli(0)

	var snap Snapshot
	for range 3 {
		s.Release(core.ActionCollect)
		s.Press(core.ActionCollect)
		clock = clock.Add(16 * time.Millisecond)
		snap = s.Tick(clock)
	}
	if snap.State.Score != 1500 {
		t.Errorf("Score = %d, expected 1500", snap.State.Score)
	}
	if cues.fanfares != 3 {
		t.Errorf("fanfares = %d, expected 3", cues.fanfares)
	}

	snap = tickUntil(t, s, &clock, func(sn Snapshot) bool { return sn.State.LevelCleared })
	if snap.State.Collected() != 3 || snap.Progress() != 0.2 {
		t.Errorf("collected %d progress %v", snap.State.Collected(), snap.Progress())
	}

	n, err := journal.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("journal has %d entries, expected 3", n)
	}
}

func TestStaleMergeJournalsSourceIsland(t *testing.T) {
	journal, err := storage.OpenJournal()
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	release := make(chan struct{})
	gated := narrative.FetcherFunc(func(ctx context.Context, req narrative.Request) (narrative.Lore, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return narrative.Lore{}, ctx.Err()
		}
		return narrative.Lore{Title: "Tide Bell", Content: "rings under water"}, nil
	})
	s := newTestSession(t, nearStartConfig(), Options{Seed: 1, Fetcher: gated, Journal: journal})
	clock := time.UnixMilli(0)

	s.Press(core.ActionCollect)
	clock = clock.Add(16 * time.Millisecond)
	s.Tick(clock)
	source := s.Snapshot(clock).Island.Name

	s.sim.StartAt(2)
	close(release)
	tickUntil(t, s, &clock, func(sn Snapshot) bool { return sn.Lore != nil })

	entries, err := journal.Entries(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("journal has %d entries, expected 1", len(entries))
	}
	e := entries[0]
	if !e.Stale {
		t.Error("merge after the level changed should be journaled as stale")
	}
	if e.IslandIndex != 0 || e.Island != source {
		t.Errorf("entry island = %d (%s), expected 0 (%s)", e.IslandIndex, e.Island, source)
	}
}

func TestHeldCollectFiresOnce(t *testing.T) {
	s := newTestSession(t, nearStartConfig(), Options{Seed: 1})
	clock := time.UnixMilli(0)

	s.Press(core.ActionCollect)
	for range 3 {
		clock = clock.Add(16 * time.Millisecond)
		s.Tick(clock)
		s.Press(core.ActionCollect) // auto-repeat
	}
	if score := s.Snapshot(clock).State.Score; score != 500 {
		t.Errorf("Score = %d, expected a single collection", score)
	}
}

func TestBeatAndScanCues(t *testing.T) {
	cues := &recordingCues{}
	s := newTestSession(t, config.DefaultConfig(), Options{Seed: 1, Cues: cues})

	s.Press(core.ActionScan)
	s.Tick(time.UnixMilli(1200))
	s.Tick(time.UnixMilli(1250))
	s.Tick(time.UnixMilli(1800))

	if len(cues.beats) != 2 || cues.beats[0] != 2 || cues.beats[1] != 3 {
		t.Errorf("beats = %v, expected [2 3]", cues.beats)
	}
	if cues.scans != 1 {
		t.Errorf("scans = %d, expected 1", cues.scans)
	}
}

func TestPauseFreezesTicks(t *testing.T) {
	s := newTestSession(t, config.DefaultConfig(), Options{Seed: 1})
	s.Tick(time.UnixMilli(0))

	s.SetPaused(true)
	for i := range 5 {
		snap := s.Tick(time.UnixMilli(int64(i) * 16))
		if snap.State.Tick != 1 || !snap.Paused {
			t.Fatalf("paused tick advanced state to %d", snap.State.Tick)
		}
	}

	s.SetPaused(false)
	if snap := s.Tick(time.UnixMilli(100)); snap.State.Tick != 2 {
		t.Errorf("tick after resume = %d, expected 2", snap.State.Tick)
	}
}

func TestPublishEvery(t *testing.T) {
	pub := &countingPublisher{}
	s := newTestSession(t, config.DefaultConfig(), Options{Seed: 1, Publisher: pub, PublishEvery: 2})

	for i := range 6 {
		s.Tick(time.UnixMilli(int64(i) * 16))
	}
	if len(pub.snaps) != 3 {
		t.Errorf("published %d snapshots, expected 3", len(pub.snaps))
	}
	if pub.snaps[2].State.Tick != 6 {
		t.Errorf("last published tick = %d, expected 6", pub.snaps[2].State.Tick)
	}
}

func TestStartIsland(t *testing.T) {
	s := newTestSession(t, config.DefaultConfig(), Options{Seed: 1, StartIsland: 3})
	snap := s.Snapshot(time.UnixMilli(0))
	if snap.State.IslandIndex != 3 || snap.Island.Name != "Bamboo Flute Lagoon" {
		t.Errorf("started on %d (%s)", snap.State.IslandIndex, snap.Island.Name)
	}
	if snap.IslandCount != 5 {
		t.Errorf("IslandCount = %d", snap.IslandCount)
	}
}

func TestSnapshotVisibility(t *testing.T) {
	s := newTestSession(t, config.DefaultConfig(), Options{Seed: 1})
	snap := s.Snapshot(time.UnixMilli(0))
	far := snap.State.Treasures[0] // (620, 140), far from the start

	if snap.Visible(far, 120) {
		t.Error("distant treasure should be hidden without a scan")
	}
	snap.State.ScannerActive = true
	if !snap.Visible(far, 120) {
		t.Error("scanner should reveal every treasure")
	}
	snap.State.ScannerRange = 200
	snap.Now = time.UnixMilli(900)
	if r := snap.ScanRadius(); r != 100 {
		t.Errorf("ScanRadius() = %v, expected 100", r)
	}
	far.Collected = true
	if snap.Visible(far, 120) {
		t.Error("collected treasures are never drawn")
	}
}
