package config

import (
	_ "embed"
)

//go:embed defaults/echoisles.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{Width: 800, Height: 600},
		Player: PlayerConfig{
			StartX:     80,
			StartY:     300,
			Speed:      4,
			HalfExtent: 30,
			Hitbox:     15,
		},
		Beat: BeatConfig{IntervalMS: 600, Cycle: 8},
		Scanner: ScannerConfig{
			DurationMS:    2000,
			CooldownTicks: 100,
			InitialRange:  200,
			RangeStep:     30,
		},
		Collect: CollectConfig{
			PickupRadius: 50,
			Reward:       500,
			RevealRadius: 120,
		},
		Portal: PortalConfig{X: 720, Y: 300, Radius: 60},
		Enemies: EnemyConfig{
			SpawnX:        450,
			SpawnY:        100,
			SpawnW:        250,
			SpawnH:        400,
			Range:         100,
			BaseSpeed:     1.0,
			SpeedPerTier:  0.15,
			OrbitStep:     0.03,
			SweepFactor:   2,
			SweepPeriodMS: 1000,
		},
		Obstacles: ObstacleConfig{
			StartX:  200,
			Spacing: 130,
			MinY:    100,
			YSpan:   350,
			Size:    80,
			Extra:   2,
		},
		Treasures: []TreasureSpec{
			{X: 620, Y: 140, Category: "crystal", Name: "Deep Bass", RhythmSpeed: 1000},
			{X: 300, Y: 500, Category: "relic", Name: "Echo Charm", RhythmSpeed: 800},
			{X: 680, Y: 450, Category: "scroll", Name: "Island History", RhythmSpeed: 1200},
		},
		Narrative: NarrativeConfig{TimeoutMS: 4000},
		Input:     InputConfig{HoldTicks: 8},
	}
}
