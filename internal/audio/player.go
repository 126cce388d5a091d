package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/echo-isles/internal/catalog"
)

// masterVolume scales every cue before it reaches the speaker.
const masterVolume = 0.2

// Player plays cues on the local speaker. When the device cannot be opened
// it stays silent and every call is a no-op.
type Player struct {
	mu     sync.Mutex
	synth  *Synth
	mixer  *beep.Mixer
	logger *log.Logger
	ready  bool
	muted  bool
}

// NewPlayer creates a player. Call Init to open the audio device.
func NewPlayer(seed int64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		synth:  NewSynth(SampleRate, seed),
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the speaker. A failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing silently", "error", err)
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(newVolume(p.mixer, masterVolume))
	p.ready = true
	return nil
}

// SetMuted toggles output without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Beat plays the cue for a beat edge on the given island.
func (p *Player) Beat(index int, isl catalog.Island) {
	p.play(func(s *Synth) beep.Streamer { return s.Beat(index, isl) })
}

// Scan plays the scanner sweep.
func (p *Player) Scan() {
	p.play(func(s *Synth) beep.Streamer { return s.Scan() })
}

// Fanfare plays the collection fanfare.
func (p *Player) Fanfare() {
	p.play(func(s *Synth) beep.Streamer { return s.Fanfare() })
}

func (p *Player) play(build func(*Synth) beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.muted {
		return
	}
	s := build(p.synth)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all cues and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.ready = false
}
