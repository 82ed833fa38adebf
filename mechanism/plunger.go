package mechanism

import (
	"math"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// PlungerMode is the plunger state
type PlungerMode uint8

const (
	PlungerIdle PlungerMode = iota
	PlungerPull
	PlungerFire
	PlungerReturn
)

func (m PlungerMode) String() string {
	switch m {
	case PlungerIdle:
		return "idle"
	case PlungerPull:
		return "pull"
	case PlungerFire:
		return "fire"
	case PlungerReturn:
		return "return"
	}
	return "unknown"
}

// PlungerInput is the launch control as seen by one step
type PlungerInput struct {
	Held     bool
	Charge   float64 // Live charge while held
	Released bool    // Release pulse this step
	Fired    float64 // Charge carried by the pulse
	InLane   bool
}

// Plunger commands the kinematic plunger position along +Z (pull) and -Z (fire)
//
// idle -> pull while held with the ball in lane; pull -> fire on release;
// fire -> return at the stroke floor; return -> idle at rest.
type Plunger struct {
	rest    float64
	pullMax float64

	mode      PlungerMode
	pos       float64
	floor     float64 // Fire stroke end, at or before rest
	fireSpeed float64 // Initial fire speed of the current stroke
	elapsed   float64 // Seconds in the current fire/return stroke
}

func NewPlunger(rest, pullMax float64) *Plunger {
	p := &Plunger{rest: rest, pullMax: pullMax}
	p.Reset()
	return p
}

// Reset returns to idle at rest
func (p *Plunger) Reset() {
	p.mode = PlungerIdle
	p.pos = p.rest
	p.floor = p.rest
	p.fireSpeed = 0
	p.elapsed = 0
}

func (p *Plunger) Mode() PlungerMode  { return p.mode }
func (p *Plunger) Position() float64  { return p.pos }
func (p *Plunger) FireSpeed() float64 { return p.fireSpeed }

// Bounds returns the clamp range of the commanded position
func (p *Plunger) Bounds() (lo, hi float64) {
	return math.Min(p.rest, p.floor), p.pullMax
}

// FireSpeedFor returns the initial stroke speed for a release charge
func FireSpeedFor(charge float64) float64 {
	c := vmath.Clamp01(charge)
	return parameter.PlungerFireSpeedBase + parameter.PlungerFireSpeedK*c*c
}

// Step advances the plunger by dt seconds and reports whether a fire stroke began
func (p *Plunger) Step(dt float64, in PlungerInput) (fired bool) {
	switch p.mode {
	case PlungerIdle, PlungerPull:
		if p.mode == PlungerPull && in.Released {
			p.beginFire(in.Fired)
			fired = true
			break
		}
		if in.Held && in.InLane {
			p.mode = PlungerPull
			c := vmath.Clamp01(in.Charge)
			target := p.rest + (p.pullMax-p.rest)*c*c
			p.pos += (target - p.pos) * math.Min(1, parameter.PlungerFollowRate*dt)
		} else if p.mode == PlungerPull {
			// Hold lost without a pulse: ease back without striking
			p.mode = PlungerReturn
			p.floor = p.rest
			p.elapsed = 0
		}

	case PlungerFire:
		p.elapsed += dt
		speed := math.Max(parameter.PlungerFireMinSpeed, p.fireSpeed*math.Exp(-parameter.PlungerFireDamping*p.elapsed))
		p.pos -= speed * dt
		if p.pos <= p.floor {
			p.pos = p.floor
			p.mode = PlungerReturn
			p.elapsed = 0
		}

	case PlungerReturn:
		p.elapsed += dt
		speed := math.Max(parameter.PlungerReturnMinSpeed, parameter.PlungerReturnSpeed*math.Exp(-parameter.PlungerReturnDamping*p.elapsed))
		dir := 1.0
		if p.pos > p.rest {
			dir = -1
		}
		p.pos += dir * speed * dt
		crossed := (dir > 0 && p.pos >= p.rest) || (dir < 0 && p.pos <= p.rest)
		if crossed || math.Abs(p.pos-p.rest) <= parameter.PlungerRestEpsilon {
			p.pos = p.rest
			p.mode = PlungerIdle
			p.floor = p.rest
		}
	}

	lo, hi := p.Bounds()
	p.pos = vmath.Clamp(p.pos, lo, hi)
	return fired
}

func (p *Plunger) beginFire(charge float64) {
	c := vmath.Clamp01(charge)
	p.mode = PlungerFire
	p.floor = p.rest - parameter.PlungerOvershoot*c
	p.fireSpeed = FireSpeedFor(c)
	p.elapsed = 0
}
