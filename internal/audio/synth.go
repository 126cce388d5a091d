// Package audio synthesizes the beat, scan and fanfare cues with beep.
// Cues are fire-and-forget: nothing here feeds back into the simulation.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/echo-isles/internal/catalog"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

const (
	attack = 50 * time.Millisecond
	floor  = 0.001 // Envelope start and end level
)

// tone is a single oscillator note with an optional exponential pitch slide.
type tone struct {
	freq  float64
	slide float64 // Target frequency at the end; zero holds the pitch
	wave  catalog.Waveform
	dur   time.Duration
	vol   float64
	decay bool // Exponential fade instead of linear
}

// oscillator renders a tone sample by sample.
type oscillator struct {
	tone
	rate     beep.SampleRate
	total    int
	attack   int
	position int
	phase    float64
}

func (t tone) streamer(rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		tone:   t,
		rate:   rate,
		total:  rate.N(t.dur),
		attack: rate.N(attack),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		v := wave(o.wave, o.phase) * o.gain()
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.frequency() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// progress returns how far through the note the oscillator is, in [0, 1).
func (o *oscillator) progress() float64 {
	if o.total == 0 {
		return 1
	}
	return float64(o.position) / float64(o.total)
}

func (o *oscillator) frequency() float64 {
	if o.slide <= 0 || o.freq <= 0 {
		return o.freq
	}
	return o.freq * math.Pow(o.slide/o.freq, o.progress())
}

// gain follows a short linear attack, then fades to the floor by the end.
func (o *oscillator) gain() float64 {
	if o.position < o.attack {
		return floor + (o.vol-floor)*float64(o.position)/float64(o.attack)
	}
	span := o.total - o.attack
	if span <= 0 {
		return o.vol
	}
	p := float64(o.position-o.attack) / float64(span)
	if o.decay {
		return o.vol * math.Pow(floor/o.vol, p)
	}
	return o.vol + (floor-o.vol)*p
}

// wave evaluates a waveform at phase p in [0, 1).
func wave(w catalog.Waveform, p float64) float64 {
	switch w {
	case catalog.WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case catalog.WaveSawtooth:
		return 2 * (p - 0.5)
	case catalog.WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
