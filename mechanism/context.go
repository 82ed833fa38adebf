// Package mechanism holds the scripted playfield devices
//
// Every device updates once per fixed step before the physics step and reacts to
// dispatched contacts after it. Deadlines compare against simulation time carried
// in Context, never wall time.
package mechanism

import (
	"time"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/physics"
)

// Scorer receives awards from devices
type Scorer interface {
	// Award adds floor(base*multiplier) and applies the boost, returning points gained
	Award(base int, boost float64) int64
	// BumpMultiplier raises the multiplier by whole steps, capped
	BumpMultiplier(steps int)
}

// Emitter receives cosmetic cues
type Emitter interface {
	Emit(ev event.GameEvent)
}

// Context is the per-step view a device acts through
type Context struct {
	World physics.World
	Ball  physics.BodyHandle
	Now   time.Duration // Simulation time
	Step  uint64
	Score Scorer
	Cues  Emitter
}

func (c *Context) emit(ev event.GameEvent) {
	if c.Cues == nil {
		return
	}
	ev.Step = c.Step
	c.Cues.Emit(ev)
}
