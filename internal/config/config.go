// Package config provides YAML-based tuning for the simulation and its
// adapters, with embedded defaults and a file search path.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tuning for an Echo Isles session.
type Config struct {
	Field     FieldConfig     `yaml:"field"`
	Player    PlayerConfig    `yaml:"player"`
	Beat      BeatConfig      `yaml:"beat"`
	Scanner   ScannerConfig   `yaml:"scanner"`
	Collect   CollectConfig   `yaml:"collect"`
	Portal    PortalConfig    `yaml:"portal"`
	Enemies   EnemyConfig     `yaml:"enemies"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Treasures []TreasureSpec  `yaml:"treasures"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Input     InputConfig     `yaml:"input"`
}

// FieldConfig defines the play-field dimensions.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines player start, speed and extents.
type PlayerConfig struct {
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	Speed      float64 `yaml:"speed"`
	HalfExtent float64 `yaml:"half_extent"`
	Hitbox     float64 `yaml:"hitbox"`
}

// BeatConfig defines the tempo of the beat clock.
type BeatConfig struct {
	IntervalMS int `yaml:"interval_ms"`
	Cycle      int `yaml:"cycle"`
}

// Interval returns the beat interval as a duration.
func (b BeatConfig) Interval() time.Duration {
	return time.Duration(b.IntervalMS) * time.Millisecond
}

// ScannerConfig defines the scanner pulse.
type ScannerConfig struct {
	DurationMS    int `yaml:"duration_ms"`
	CooldownTicks int `yaml:"cooldown_ticks"`
	InitialRange  int `yaml:"initial_range"`
	RangeStep     int `yaml:"range_step"`
}

// Duration returns how long a scan stays active.
func (s ScannerConfig) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

// CollectConfig defines pickup and reward parameters.
type CollectConfig struct {
	PickupRadius float64 `yaml:"pickup_radius"`
	Reward       int     `yaml:"reward"`
	RevealRadius float64 `yaml:"reveal_radius"`
}

// PortalConfig places the level exit.
type PortalConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// EnemyConfig defines adversary spawning and motion.
type EnemyConfig struct {
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	SpawnW        float64 `yaml:"spawn_w"`
	SpawnH        float64 `yaml:"spawn_h"`
	Range         float64 `yaml:"range"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerTier  float64 `yaml:"speed_per_tier"`
	OrbitStep     float64 `yaml:"orbit_step"`      // Radians per tick for patrol orbits
	SweepFactor   float64 `yaml:"sweep_factor"`    // Sweep displacement multiplier
	SweepPeriodMS float64 `yaml:"sweep_period_ms"` // Time scale of the sweep sine
}

// ObstacleConfig defines beat obstacle placement.
type ObstacleConfig struct {
	StartX  float64 `yaml:"start_x"`
	Spacing float64 `yaml:"spacing"`
	MinY    float64 `yaml:"min_y"`
	YSpan   float64 `yaml:"y_span"`
	Size    float64 `yaml:"size"`
	Extra   int     `yaml:"extra"` // Obstacles beyond the difficulty tier
}

// TreasureSpec is one entry of the fixed treasure layout.
type TreasureSpec struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Category    string  `yaml:"category"`
	Name        string  `yaml:"name"`
	RhythmSpeed int     `yaml:"rhythm_speed"`
}

// NarrativeConfig configures the lore service adapter.
type NarrativeConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Timeout returns the bound placed on each lore request.
func (n NarrativeConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

// InputConfig configures the input adapter.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // Ticks a key press stays held without a repeat
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the values a level and the simulation depend on.
// A failure here is fatal at startup.
func (c Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fail("field must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Player.HalfExtent < 0 || c.Player.HalfExtent*2 >= c.Field.Width || c.Player.HalfExtent*2 >= c.Field.Height {
		return fail("player half_extent %v does not fit the field", c.Player.HalfExtent)
	}
	if c.Player.Speed < 0 || c.Player.Hitbox < 0 {
		return fail("player speed and hitbox must not be negative")
	}
	if c.Beat.IntervalMS <= 0 || c.Beat.Cycle <= 0 {
		return fail("beat interval_ms and cycle must be positive")
	}
	if c.Scanner.DurationMS <= 0 || c.Scanner.CooldownTicks < 0 {
		return fail("scanner duration_ms must be positive and cooldown_ticks not negative")
	}
	if c.Scanner.RangeStep <= 0 {
		return fail("scanner range_step must be positive, got %d", c.Scanner.RangeStep)
	}
	if c.Collect.PickupRadius <= 0 {
		return fail("collect pickup_radius must be positive, got %v", c.Collect.PickupRadius)
	}
	if c.Portal.Radius <= 0 {
		return fail("portal radius must be positive, got %v", c.Portal.Radius)
	}
	if c.Obstacles.Size <= 0 || c.Obstacles.Size > c.Field.Width || c.Obstacles.Size > c.Field.Height {
		return fail("obstacle size %v does not fit the field", c.Obstacles.Size)
	}
	if c.Obstacles.Spacing <= 0 || c.Obstacles.Extra < 0 {
		return fail("obstacle spacing must be positive and extra not negative")
	}
	if len(c.Treasures) == 0 {
		return fail("at least one treasure is required")
	}
	for i, ts := range c.Treasures {
		if ts.X < 0 || ts.X > c.Field.Width || ts.Y < 0 || ts.Y > c.Field.Height {
			return fail("treasure %d (%q) lies outside the field", i, ts.Name)
		}
	}
	if c.Narrative.TimeoutMS <= 0 {
		return fail("narrative timeout_ms must be positive")
	}
	return nil
}
