package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/echo-isles/internal/catalog"
)

// scale returns the five-note accent scale built on an island's base frequency.
func scale(base float64) [5]float64 {
	return [5]float64{base, base * 1.125, base * 1.25, base * 1.5, base * 1.66}
}

var fanfareNotes = []float64{523.25, 659.25, 783.99, 1046.50, 1318.51, 1567.98}

const fanfareSpacing = 80 * time.Millisecond

// Synth builds cue streamers. Accent notes are picked with a seeded generator.
// A Synth is not safe for concurrent use.
type Synth struct {
	rate beep.SampleRate
	rng  *rand.Rand
}

// NewSynth creates a synth rendering at rate.
func NewSynth(rate beep.SampleRate, seed int64) *Synth {
	return &Synth{rate: rate, rng: rand.New(rand.NewSource(seed))}
}

// Beat returns the cue for one beat edge: a bass heartbeat an octave below
// the island's base, a falling accent on even beats and a rising plink on
// the last beat of every four.
func (s *Synth) Beat(index int, isl catalog.Island) beep.Streamer {
	notes := s.beatTones(index, isl)
	streams := make([]beep.Streamer, len(notes))
	for i, t := range notes {
		streams[i] = t.streamer(s.rate)
	}
	return beep.Mix(streams...)
}

func (s *Synth) beatTones(index int, isl catalog.Island) []tone {
	sc := scale(isl.AudioFreq)
	notes := []tone{
		{freq: isl.AudioFreq / 2, wave: isl.Osc, dur: 400 * time.Millisecond, vol: 0.2, decay: true},
	}
	if index%2 == 0 {
		f := sc[s.rng.Intn(len(sc))]
		notes = append(notes, tone{freq: f, slide: f * 0.4, wave: isl.Accent, dur: 300 * time.Millisecond, vol: 0.08, decay: true})
	}
	if index%4 == 3 {
		notes = append(notes, tone{freq: sc[3] * 2.2, slide: sc[3] * 3, wave: catalog.WaveTriangle, dur: 150 * time.Millisecond, vol: 0.05, decay: true})
	}
	return notes
}

// Scan returns the rising sweep played when a scan starts.
func (s *Synth) Scan() beep.Streamer {
	return tone{freq: 200, slide: 800, wave: catalog.WaveSine, dur: 800 * time.Millisecond, vol: 0.1, decay: true}.streamer(s.rate)
}

// Fanfare returns the collection and island-advance cue: six rising notes,
// each offset by silence within the stream, over a sliding sawtooth.
func (s *Synth) Fanfare() beep.Streamer {
	streams := make([]beep.Streamer, 0, len(fanfareNotes)+1)
	for i, f := range fanfareNotes {
		note := tone{freq: f, wave: catalog.WaveSine, dur: 600 * time.Millisecond, vol: 0.15, decay: true}.streamer(s.rate)
		offset := s.rate.N(time.Duration(i) * fanfareSpacing)
		streams = append(streams, beep.Seq(beep.Silence(offset), note))
	}
	streams = append(streams, tone{freq: 100, slide: 400, wave: catalog.WaveSawtooth, dur: 1200 * time.Millisecond, vol: 0.1, decay: true}.streamer(s.rate))
	return beep.Mix(streams...)
}
