// Package catalog holds the ordered, read-only list of islands the game
// cycles through. It is loaded once at startup and never mutated.
package catalog

import (
	"errors"
	"fmt"
)

// Waveform names an oscillator shape used by the audio layer.
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveTriangle Waveform = "triangle"
	WaveSquare   Waveform = "square"
	WaveSawtooth Waveform = "sawtooth"
)

// Island is one catalog entry.
type Island struct {
	Name       string   `yaml:"name" json:"name"`
	Theme      string   `yaml:"theme" json:"theme"`
	Color      string   `yaml:"color" json:"color"`           // Accent color token, "#rrggbb"
	Background string   `yaml:"background" json:"background"` // Background color token
	Difficulty int      `yaml:"difficulty" json:"difficulty"` // Positive tier; scales adversary and obstacle counts
	AudioFreq  float64  `yaml:"audio_freq" json:"audio_freq"` // Base frequency in Hz
	Osc        Waveform `yaml:"osc" json:"osc"`
	Accent     Waveform `yaml:"accent" json:"accent"`
}

// Catalog is the ordered island sequence.
type Catalog struct {
	Islands []Island `yaml:"islands" json:"islands"`
}

// Validation errors. Both are fatal at startup since no level could be built.
var (
	ErrEmptyCatalog      = errors.New("catalog: no islands defined")
	ErrInvalidDifficulty = errors.New("catalog: difficulty must be positive")
)

// Len returns the number of islands.
func (c Catalog) Len() int {
	return len(c.Islands)
}

// Wrap maps any index onto the island sequence. Advancing past the last
// island is not an error; the sequence loops.
func (c Catalog) Wrap(index int) int {
	n := len(c.Islands)
	if n == 0 {
		return 0
	}
	index %= n
	if index < 0 {
		index += n
	}
	return index
}

// At returns the island at index, wrapping around the sequence.
func (c Catalog) At(index int) Island {
	return c.Islands[c.Wrap(index)]
}

// Next returns the index that follows index in play order.
func (c Catalog) Next(index int) int {
	return c.Wrap(index + 1)
}

// Validate checks that a level can be instantiated for every island.
func (c Catalog) Validate() error {
	if len(c.Islands) == 0 {
		return ErrEmptyCatalog
	}
	for i, isl := range c.Islands {
		if isl.Difficulty <= 0 {
			return fmt.Errorf("island %d (%q) has difficulty %d: %w", i, isl.Name, isl.Difficulty, ErrInvalidDifficulty)
		}
		if isl.AudioFreq <= 0 {
			return fmt.Errorf("catalog: island %d (%q) has non-positive audio_freq %v", i, isl.Name, isl.AudioFreq)
		}
	}
	return nil
}
