package world

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
)

// Category is the kind of a collectible treasure.
type Category int

const (
	CategoryCrystal Category = iota
	CategoryRelic
	CategoryScroll
)

type categoryRule struct {
	name  string
	glyph rune
	color core.Color
}

var categoryRules = [...]categoryRule{
	CategoryCrystal: {"crystal", '◆', core.ColorBrightCyan},
	CategoryRelic:   {"relic", '♦', core.ColorBrightYellow},
	CategoryScroll:  {"scroll", '§', core.ColorOrange},
}

// Categories lists every treasure category in layout order.
var Categories = []Category{CategoryCrystal, CategoryRelic, CategoryScroll}

// ParseCategory maps a config name to a Category.
func ParseCategory(s string) (Category, error) {
	for i, r := range categoryRules {
		if r.name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("world: unknown treasure category %q", s)
}

func (c Category) valid() bool {
	return c >= 0 && int(c) < len(categoryRules)
}

func (c Category) String() string {
	if !c.valid() {
		return "unknown"
	}
	return categoryRules[c].name
}

// Glyph returns the rune used to draw a treasure of this category.
func (c Category) Glyph() rune {
	if !c.valid() {
		return '?'
	}
	return categoryRules[c].glyph
}

// Color returns the display color for this category.
func (c Category) Color() core.Color {
	if !c.valid() {
		return core.ColorDefault
	}
	return categoryRules[c].color
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Behavior selects the motion rule of an adversary.
type Behavior int

const (
	BehaviorPatrol Behavior = iota // Orbits its spawn point
	BehaviorSweep                  // Oscillates horizontally
)

// motionFunc advances one adversary by one tick.
type motionFunc func(e *Enemy, now time.Time, cfg config.EnemyConfig)

type behaviorRule struct {
	name   string
	glyph  rune
	motion motionFunc
}

var behaviorRules = [...]behaviorRule{
	BehaviorPatrol: {"patrol", '∞', patrol},
	BehaviorSweep:  {"sweep", 'Ж', sweep},
}

func (b Behavior) valid() bool {
	return b >= 0 && int(b) < len(behaviorRules)
}

func (b Behavior) String() string {
	if !b.valid() {
		return "unknown"
	}
	return behaviorRules[b].name
}

// Glyph returns the rune used to draw an adversary with this behavior.
func (b Behavior) Glyph() rune {
	if !b.valid() {
		return '?'
	}
	return behaviorRules[b].glyph
}

// MarshalText encodes the behavior by name.
func (b Behavior) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// patrol advances the orbit angle and steps along the circle.
func patrol(e *Enemy, _ time.Time, cfg config.EnemyConfig) {
	e.Angle += cfg.OrbitStep
	e.Pos.X += math.Cos(e.Angle) * e.Speed
	e.Pos.Y += math.Sin(e.Angle) * e.Speed
}

// sweep oscillates horizontally on a wall-clock sine.
func sweep(e *Enemy, now time.Time, cfg config.EnemyConfig) {
	period := cfg.SweepPeriodMS
	if period <= 0 {
		period = 1000
	}
	t := float64(now.UnixMilli()) / period
	e.Pos.X += math.Sin(t) * e.Speed * cfg.SweepFactor
}
