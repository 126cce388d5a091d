package beat

import (
	"errors"
	"testing"
	"time"
)

func ms(n int64) time.Time {
	return time.UnixMilli(n)
}

func TestClockIndex(t *testing.T) {
	c := NewClock(600*time.Millisecond, 8)

	tests := []struct {
		name     string
		at       int64
		expected int
	}{
		{"epoch", 0, 0},
		{"just before first beat", 599, 0},
		{"first beat", 600, 1},
		{"two beats", 1200, 2},
		{"last beat of cycle", 4200, 7},
		{"wraps to zero", 4800, 0},
		{"nine beats elapsed", 5400, 1},
		{"before epoch floors", -1, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Index(ms(tc.at)); got != tc.expected {
				t.Errorf("Index(%dms) = %d, expected %d", tc.at, got, tc.expected)
			}
		})
	}
}

func TestClockPhase(t *testing.T) {
	c := NewClock(600*time.Millisecond, 8)

	tests := []struct {
		at       int64
		expected int
	}{
		{0, 0},
		{599, 0},
		{600, 1},
		{1200, 0},
		{5400, 1},
		{-600, 1},
	}

	for _, tc := range tests {
		if got := c.Phase(ms(tc.at)); got != tc.expected {
			t.Errorf("Phase(%dms) = %d, expected %d", tc.at, got, tc.expected)
		}
	}
}

func TestClockDeterministic(t *testing.T) {
	c := NewClock(600*time.Millisecond, 8)
	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		if c.Index(at) != c.Index(at) || c.Phase(at) != c.Phase(at) {
			t.Fatal("clock must be a pure function of time")
		}
	}

	// Phase is always the parity of the cycle index when the cycle is even.
	for step := int64(0); step < 40; step++ {
		t0 := ms(step * 150)
		if c.Phase(t0) != c.Index(t0)%2 {
			t.Errorf("Phase and Index parity disagree at %dms", step*150)
		}
	}
}

func TestClockValidate(t *testing.T) {
	if err := NewClock(600*time.Millisecond, 8).Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
	if err := NewClock(0, 8).Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Validate() with zero interval = %v, expected ErrInvalidClock", err)
	}
	if err := NewClock(500*time.Microsecond, 8).Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Validate() with sub-millisecond interval = %v, expected ErrInvalidClock", err)
	}
	if err := NewClock(time.Millisecond, 8).Validate(); err != nil {
		t.Errorf("Validate() with 1ms interval = %v, expected nil", err)
	}
	if err := NewClock(time.Second, 0).Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Validate() with zero cycle = %v, expected ErrInvalidClock", err)
	}
}
