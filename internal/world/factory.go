package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/echo-isles/internal/catalog"
	"github.com/vovakirdan/echo-isles/internal/config"
	"github.com/vovakirdan/echo-isles/internal/core"
)

// Level is a freshly instantiated set of entities for one island.
type Level struct {
	Island      int
	Generation  uint64
	PlayerStart core.Vec
	Treasures   []Treasure
	Enemies     []Enemy
	Obstacles   []Obstacle
}

// Factory builds levels from the catalog and tuning. Every Instantiate call
// gets a new generation number, so entity ids never repeat within a session.
type Factory struct {
	cfg        config.Config
	islands    catalog.Catalog
	categories []Category
	rng        *rand.Rand
	generation uint64
}

// NewFactory creates a level factory. The treasure layout is checked here.
func NewFactory(cfg config.Config, cat catalog.Catalog, seed int64) (*Factory, error) {
	categories := make([]Category, len(cfg.Treasures))
	for i, ts := range cfg.Treasures {
		c, err := ParseCategory(ts.Category)
		if err != nil {
			return nil, fmt.Errorf("world: treasure %d: %w", i, err)
		}
		categories[i] = c
	}
	return &Factory{
		cfg:        cfg,
		islands:    cat,
		categories: categories,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// Generation returns the generation of the most recently built level.
func (f *Factory) Generation() uint64 {
	return f.generation
}

// Instantiate builds the level for the island at index, wrapping past the
// end of the catalog.
func (f *Factory) Instantiate(index int) Level {
	index = f.islands.Wrap(index)
	island := f.islands.At(index)
	f.generation++

	l := Level{
		Island:      index,
		Generation:  f.generation,
		PlayerStart: core.V(f.cfg.Player.StartX, f.cfg.Player.StartY),
	}
	l.Treasures = f.treasures(index)
	l.Enemies = f.enemies(index, island.Difficulty)
	l.Obstacles = f.obstacles(index, island.Difficulty)
	return l
}

func (f *Factory) id(prefix string, n, island int) string {
	return fmt.Sprintf("%s%d-%d-%d", prefix, n, island, f.generation)
}

func (f *Factory) treasures(island int) []Treasure {
	out := make([]Treasure, len(f.cfg.Treasures))
	for i, ts := range f.cfg.Treasures {
		out[i] = Treasure{
			ID:          f.id("t", i+1, island),
			Pos:         core.V(ts.X, ts.Y),
			Category:    f.categories[i],
			Name:        ts.Name,
			RhythmSpeed: ts.RhythmSpeed,
		}
	}
	return out
}

func (f *Factory) enemies(island, tier int) []Enemy {
	ec := f.cfg.Enemies
	n := f.cfg.EnemyCount(tier)
	out := make([]Enemy, n)
	for i := range n {
		x := ec.SpawnX + f.rng.Float64()*ec.SpawnW
		y := ec.SpawnY + f.rng.Float64()*ec.SpawnH
		behavior := BehaviorPatrol
		if i%2 != 0 {
			behavior = BehaviorSweep
		}
		out[i] = Enemy{
			ID:       f.id("e", i, island),
			Pos:      core.V(core.ClampF(x, 0, f.cfg.Field.Width), core.ClampF(y, 0, f.cfg.Field.Height)),
			Behavior: behavior,
			Range:    ec.Range,
			Speed:    f.cfg.EnemySpeed(tier),
			Angle:    f.rng.Float64() * 2 * math.Pi,
		}
	}
	return out
}

func (f *Factory) obstacles(island, tier int) []Obstacle {
	oc := f.cfg.Obstacles
	fw, fh := f.cfg.Field.Width, f.cfg.Field.Height

	// Columns that would run past the right edge wrap to the first one.
	columns := int((fw-oc.Size-oc.StartX)/oc.Spacing) + 1
	if columns < 1 {
		columns = 1
	}

	n := f.cfg.ObstacleCount(tier)
	out := make([]Obstacle, n)
	for i := range n {
		x := oc.StartX + float64(i%columns)*oc.Spacing
		y := oc.MinY + f.rng.Float64()*oc.YSpan
		out[i] = Obstacle{
			ID: f.id("o", i, island),
			Box: core.Box{
				X: core.ClampF(x, 0, fw-oc.Size),
				Y: core.ClampF(y, 0, fh-oc.Size),
				W: oc.Size,
				H: oc.Size,
			},
			Phase: i % 2,
		}
	}
	return out
}
