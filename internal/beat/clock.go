// Package beat derives the game's rhythm from wall-clock time.
//
// The clock is a pure function of a timestamp: it keeps no state, so the
// simulation core and the audio layer can read it independently from the
// same time source and always agree on the current beat.
package beat

import (
	"errors"
	"time"
)

// Phases is the number of obstacle gating phases per beat cycle.
const Phases = 2

// ErrInvalidClock is returned by Validate for an interval under a
// millisecond or a non-positive cycle.
var ErrInvalidClock = errors.New("beat: interval must be at least 1ms and cycle positive")

// Clock maps timestamps to beats at a fixed tempo.
type Clock struct {
	Interval time.Duration // Duration of one beat (reference 600ms)
	Cycle    int           // Beats per melodic cycle (reference 8)
}

// NewClock creates a clock with the given beat interval and cycle length.
func NewClock(interval time.Duration, cycle int) Clock {
	return Clock{Interval: interval, Cycle: cycle}
}

// Validate reports whether the clock can produce beats.
func (c Clock) Validate() error {
	if c.Interval < time.Millisecond || c.Cycle <= 0 {
		return ErrInvalidClock
	}
	return nil
}

// Count returns the number of whole beats elapsed at t since the Unix epoch.
func (c Clock) Count(t time.Time) int64 {
	ms := t.UnixMilli()
	interval := c.Interval.Milliseconds()
	n := ms / interval
	if ms < 0 && ms%interval != 0 {
		n-- // floor, not truncation
	}
	return n
}

// Index returns the beat position within the melodic cycle at t.
func (c Clock) Index(t time.Time) int {
	return int(mod(c.Count(t), int64(c.Cycle)))
}

// Phase returns the binary beat parity at t; obstacles whose phase matches
// are solid.
func (c Clock) Phase(t time.Time) int {
	return int(mod(c.Count(t), Phases))
}

// mod returns the non-negative remainder of a / n.
func mod(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
