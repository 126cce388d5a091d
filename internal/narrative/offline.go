package narrative

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// fragments are the building blocks of offline lore, keyed by category.
var fragments = map[string]struct {
	titles []string
	lines  []string
}{
	"crystal": {
		titles: []string{"The Resonant Shard", "Heartbeat Prism", "Glass of Low Tides"},
		lines: []string{
			"It hums a note older than the reef, one the drummers of %s swore they never played.",
			"Hold it to your ear and the bass line of %s returns, slow as a sleeping tide.",
			"Struck once, it keeps the tempo of %s long after the island falls silent.",
		},
	},
	"relic": {
		titles: []string{"Charm of the Last Chorus", "The Tuned Idol", "Keeper's Bell"},
		lines: []string{
			"Pilgrims carried it around %s so the rhythm would follow them home.",
			"Its hollow core still answers every echo that drifts across %s.",
			"The keepers of %s buried it beneath the loudest drum to keep the song alive.",
		},
	},
	"scroll": {
		titles: []string{"Score of the Drowned Choir", "Tide-Ledger", "The Unsung Verse"},
		lines: []string{
			"The ink marks beats, not words; read aloud, it is the founding song of %s.",
			"A chronicle of %s written in rests and refrains, half of it washed away.",
			"Someone on %s notated the wind itself, measure by patient measure.",
		},
	},
}

// Offline composes lore from local fragments. It stands in for a lore
// service when none is configured and honors the same cancellation contract.
type Offline struct {
	// Delay simulates service latency. Zero answers immediately.
	Delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewOffline creates an offline provider with a seeded generator.
func NewOffline(seed int64, delay time.Duration) *Offline {
	return &Offline{
		Delay: delay,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Fetch implements Fetcher.
func (o *Offline) Fetch(ctx context.Context, req Request) (Lore, error) {
	if o.Delay > 0 {
		t := time.NewTimer(o.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Lore{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Lore{}, err
	}

	set, ok := fragments[req.Category]
	if !ok {
		return Lore{}, fmt.Errorf("narrative: no offline lore for category %q", req.Category)
	}

	o.mu.Lock()
	title := set.titles[o.rng.Intn(len(set.titles))]
	line := set.lines[o.rng.Intn(len(set.lines))]
	o.mu.Unlock()

	return Lore{Title: title, Content: fmt.Sprintf(line, req.Island)}, nil
}
