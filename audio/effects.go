package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pinball/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSaw
)

// oscillator generates a wave whose frequency glides exponentially from start to end
type oscillator struct {
	start, end float64
	phase      float64
	duration   int
	position   int
	wave       WaveType
	rate       beep.SampleRate
}

func newOscillator(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		start:    start,
		end:      end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) freq() float64 {
	if o.end == o.start || o.duration == 0 {
		return o.start
	}
	frac := float64(o.position) / float64(o.duration)
	return o.start * math.Pow(o.end/o.start, frac)
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// expEnvelope ramps gain exponentially from the floor to peak over attack,
// then back down to the floor at the end of the sound
type expEnvelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
	peak     float64
}

func newExpEnvelope(s beep.Streamer, duration, attack time.Duration, peak float64, rate beep.SampleRate) *expEnvelope {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	return &expEnvelope{streamer: s, attack: att, total: total, peak: peak}
}

func (e *expEnvelope) gain() float64 {
	floor := parameter.EnvelopeFloor
	if e.position < e.attack {
		frac := float64(e.position) / float64(e.attack)
		return floor * math.Pow(e.peak/floor, frac)
	}
	decay := e.total - e.attack
	if decay <= 0 {
		return 0
	}
	frac := float64(e.position-e.attack) / float64(decay)
	return e.peak * math.Pow(floor/e.peak, frac)
}

func (e *expEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *expEnvelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; beep volume is logarithmic so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewClick is a triangle blip at pitch Hz
func NewClick(pitch float64, dur time.Duration, rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(pitch, pitch, dur, WaveTriangle, rate)
	return newExpEnvelope(osc, dur, parameter.ClickAttack, parameter.ClickPeak, rate)
}

// NewBoom is a sawtooth falling from pitch Hz to the floor pitch
func NewBoom(pitch float64, dur time.Duration, rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(pitch, parameter.BoomFloorPitch, dur, WaveSaw, rate)
	return newExpEnvelope(osc, dur, parameter.BoomAttack, parameter.BoomPeak, rate)
}
