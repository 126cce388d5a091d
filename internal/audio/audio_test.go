package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/echo-isles/internal/catalog"
)

// drain streams s to the end and returns the number of samples and the peak level.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func near(got, want, tolerance int) bool {
	return got >= want-tolerance && got <= want+tolerance
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	n, peak := drain(tone{freq: 440, wave: catalog.WaveSine, dur: 250 * time.Millisecond, vol: 0.5}.streamer(rate))
	if n != 2000 {
		t.Errorf("tone produced %d samples, expected 2000", n)
	}
	if peak > 0.5+1e-9 || peak < 0.1 {
		t.Errorf("peak = %v, expected within (0.1, 0.5]", peak)
	}
}

func TestToneSlide(t *testing.T) {
	o := tone{freq: 200, slide: 800, dur: time.Second}.streamer(SampleRate).(*oscillator)
	if f := o.frequency(); f != 200 {
		t.Errorf("start frequency = %v, expected 200", f)
	}
	o.position = o.total / 2
	if f := o.frequency(); math.Abs(f-400) > 0.01 {
		t.Errorf("midpoint frequency = %v, expected 400 on an exponential ramp", f)
	}
}

func TestWaveShapes(t *testing.T) {
	tests := []struct {
		w        catalog.Waveform
		p, value float64
	}{
		{catalog.WaveSine, 0.25, 1},
		{catalog.WaveSquare, 0.1, 1},
		{catalog.WaveSquare, 0.6, -1},
		{catalog.WaveSawtooth, 0, -1},
		{catalog.WaveTriangle, 0.5, 1},
		{catalog.WaveTriangle, 0, -1},
	}
	for _, tt := range tests {
		if got := wave(tt.w, tt.p); math.Abs(got-tt.value) > 1e-9 {
			t.Errorf("wave(%s, %v) = %v, expected %v", tt.w, tt.p, got, tt.value)
		}
	}
}

func TestBeatTones(t *testing.T) {
	s := NewSynth(SampleRate, 1)
	isl := catalog.Default().At(0)

	tests := []struct {
		index int
		notes int
	}{
		{0, 2}, // bass + accent
		{1, 1}, // bass
		{2, 2}, // bass + accent
		{3, 2}, // bass + plink
		{7, 2},
	}
	for _, tt := range tests {
		notes := s.beatTones(tt.index, isl)
		if len(notes) != tt.notes {
			t.Errorf("beat %d: %d notes, expected %d", tt.index, len(notes), tt.notes)
		}
		if notes[0].freq != isl.AudioFreq/2 || notes[0].wave != isl.Osc {
			t.Errorf("beat %d: bass = %+v", tt.index, notes[0])
		}
	}

	accent := s.beatTones(0, isl)[1]
	if math.Abs(accent.slide-accent.freq*0.4) > 1e-9 || accent.wave != isl.Accent {
		t.Errorf("accent = %+v, expected a 0.4x downward slide", accent)
	}
	plink := s.beatTones(3, isl)[1]
	if math.Abs(plink.freq-isl.AudioFreq*1.5*2.2) > 1e-9 || plink.slide <= plink.freq {
		t.Errorf("plink = %+v, expected an upward chirp", plink)
	}
}

func TestCueLengths(t *testing.T) {
	s := NewSynth(SampleRate, 1)
	isl := catalog.Default().At(2)

	if n, _ := drain(s.Beat(0, isl)); !near(n, SampleRate.N(400*time.Millisecond), 512) {
		t.Errorf("beat cue = %d samples, expected about %d", n, SampleRate.N(400*time.Millisecond))
	}
	if n, _ := drain(s.Scan()); n != SampleRate.N(800*time.Millisecond) {
		t.Errorf("scan cue = %d samples", n)
	}
	// Longest voice is the 1.2s sawtooth; the last note ends at 5*80ms + 600ms
	if n, _ := drain(s.Fanfare()); !near(n, SampleRate.N(1200*time.Millisecond), 512) {
		t.Errorf("fanfare = %d samples, expected about %d", n, SampleRate.N(1200*time.Millisecond))
	}
}

func TestSilentVolume(t *testing.T) {
	s := newVolume(tone{freq: 440, dur: 10 * time.Millisecond, vol: 1}.streamer(SampleRate), 0)
	if _, peak := drain(s); peak != 0 {
		t.Errorf("silent volume peak = %v", peak)
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(1, log.New(io.Discard))
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("Muted() should report the muted state")
	}

	// Not initialized: every cue is a silent no-op
	p.Beat(0, catalog.Default().At(0))
	p.Scan()
	p.Fanfare()
	p.Close()
}
