package narrative

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Ticket identifies the collection a fetch belongs to. It travels with the
// request and comes back unchanged in the Result.
type Ticket struct {
	Generation   uint64 // Level instance the treasure belongs to
	TreasureID   string
	TreasureName string
	Island       string
	IslandIndex  int    // Catalog index of Island
	Category     string
	Tick         uint64 // Tick the collection was dispatched on
}

// Result is a resolved fetch, ready to be merged by the simulation owner.
type Result struct {
	Ticket   Ticket
	Lore     Lore
	Fallback bool  // Lore is the stock fallback pair
	Err      error // Why the fallback was used, if it was
}

// Dispatcher runs fetches on their own goroutines and posts results to a
// buffered channel that the simulation owner drains once per tick.
type Dispatcher struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *log.Logger

	results chan Result
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Every fetch is bounded by timeout.
func NewDispatcher(f Fetcher, timeout time.Duration, buffer int, logger *log.Logger) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		fetcher: f,
		timeout: timeout,
		logger:  logger,
		results: make(chan Result, buffer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Dispatch starts a fetch and returns immediately.
func (d *Dispatcher) Dispatch(t Ticket) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res := d.resolve(t)
		select {
		case d.results <- res:
		case <-d.ctx.Done():
		}
	}()
}

func (d *Dispatcher) resolve(t Ticket) Result {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	type fetched struct {
		lore Lore
		err  error
	}
	// The fetch races the deadline; a fetcher that ignores ctx finishes
	// into the buffered channel and is dropped.
	done := make(chan fetched, 1)
	start := time.Now()
	go func() {
		lore, err := d.fetcher.Fetch(ctx, Request{Island: t.Island, Category: t.Category})
		done <- fetched{lore, err}
	}()

	var lore Lore
	var err error
	select {
	case f := <-done:
		lore, err = f.lore, f.err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err == nil && !lore.Valid() {
		err = ErrMalformed
	}
	if err != nil {
		d.logger.Warn("lore fetch failed, using fallback",
			"island", t.Island,
			"category", t.Category,
			"treasure", t.TreasureID,
			"error", err,
		)
		return Result{Ticket: t, Lore: Fallback, Fallback: true, Err: err}
	}
	d.logger.Debug("lore fetched",
		"island", t.Island,
		"category", t.Category,
		"elapsed", time.Since(start),
	)
	return Result{Ticket: t, Lore: lore}
}

// Results returns the channel resolved fetches are posted to.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Drain returns every result available right now without blocking.
func (d *Dispatcher) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-d.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Close cancels outstanding fetches and waits for their goroutines.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}
