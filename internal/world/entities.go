package world

import (
	"time"

	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
)

// Treasure is a collectible object. Collected never reverts within a level.
type Treasure struct {
	ID          string   `json:"id"`
	Pos         core.Vec `json:"pos"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	RhythmSpeed int      `json:"rhythm_speed"`
	Collected   bool     `json:"collected"`
}

// Enemy is a moving adversary.
type Enemy struct {
	ID       string   `json:"id"`
	Pos      core.Vec `json:"pos"`
	Behavior Behavior `json:"behavior"`
	Range    float64  `json:"range"`
	Speed    float64  `json:"speed"`
	Angle    float64  `json:"angle"`
}

// Move advances the enemy by one tick using its behavior's motion rule,
// then keeps it inside the field.
func (e *Enemy) Move(now time.Time, cfg config.EnemyConfig, field config.FieldConfig) {
	if !e.Behavior.valid() {
		return
	}
	behaviorRules[e.Behavior].motion(e, now, cfg)
	e.Pos.X = core.ClampF(e.Pos.X, 0, field.Width)
	e.Pos.Y = core.ClampF(e.Pos.Y, 0, field.Height)
}

// Obstacle is a rectangle that is solid only on beats matching its phase.
type Obstacle struct {
	ID    string   `json:"id"`
	Box   core.Box `json:"box"`
	Phase int      `json:"phase"`
}

// Solid reports whether the obstacle blocks movement at the given beat phase.
func (o Obstacle) Solid(phase int) bool {
	return o.Phase == phase
}
