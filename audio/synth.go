package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Voice plays the two cue sounds
type Voice interface {
	Click(pitch float64, dur time.Duration)
	Boom(pitch float64, dur time.Duration)
}

// Synth mixes cue sounds onto the system speaker
// Without a successful Initialize every call is a no-op
type Synth struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	enabled     atomic.Bool
}

func NewSynth() *Synth {
	s := &Synth{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		volume: parameter.AudioMasterVolume,
	}
	s.enabled.Store(true)
	return s
}

// Initialize opens the speaker; an error leaves the synth silent
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(parameter.AudioBufferLength)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Cleanup silences everything; beep has no speaker close
func (s *Synth) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func (s *Synth) SetEnabled(on bool) { s.enabled.Store(on) }
func (s *Synth) Enabled() bool      { return s.enabled.Load() }

// ToggleMute flips the enabled flag and returns the new state
func (s *Synth) ToggleMute() bool {
	on := !s.enabled.Load()
	s.enabled.Store(on)
	return on
}

func (s *Synth) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = vmath.Clamp01(v)
	s.mu.Unlock()
}

func (s *Synth) Click(pitch float64, dur time.Duration) {
	s.play(NewClick(pitch, dur, s.rate))
}

func (s *Synth) Boom(pitch float64, dur time.Duration) {
	s.play(NewBoom(pitch, dur, s.rate))
}

func (s *Synth) play(st beep.Streamer) {
	if !s.enabled.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(newVolume(st, s.volume))
	speaker.Unlock()
}

var _ Voice = (*Synth)(nil)
