package mechanism

import (
	"math"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/table"
	"github.com/lixenwraith/pinball/vmath"
)

// ArcTracker accumulates unsigned rotation and counts whole revolutions
type ArcTracker struct {
	prev   float64
	primed bool
	arc    float64
}

// Observe feeds the current yaw and returns revolutions completed since the last call
// The first observation only primes the tracker
func (a *ArcTracker) Observe(yaw float64) int {
	if !a.primed {
		a.prev = yaw
		a.primed = true
		return 0
	}
	a.arc += math.Abs(vmath.AngleDelta(a.prev, yaw))
	a.prev = yaw

	if a.arc < vmath.TwoPi {
		return 0
	}
	turns := math.Floor(a.arc / vmath.TwoPi)
	a.arc -= turns * vmath.TwoPi
	return int(turns)
}

// Arc returns accumulated rotation not yet paid out, in radians
func (a *ArcTracker) Arc() float64 {
	return a.arc
}

// Reset forgets the previous yaw and any partial arc
func (a *ArcTracker) Reset() {
	*a = ArcTracker{}
}

// Spinner scores the flag body's revolutions
type Spinner struct {
	def   *table.SpinnerDef
	body  physics.BodyHandle
	arc   ArcTracker
	total int
}

func NewSpinner(def *table.SpinnerDef, body physics.BodyHandle) *Spinner {
	return &Spinner{def: def, body: body}
}

// Update samples the flag yaw and pays whole revolutions
func (s *Spinner) Update(ctx *Context) {
	turns := s.arc.Observe(vmath.YawFromQuat(ctx.World.Rotation(s.body)))
	if turns == 0 {
		return
	}
	s.total += turns
	pts := ctx.Score.Award(s.def.Score*turns, 0)
	ctx.emit(event.GameEvent{Type: event.EventSpinnerSpin, ID: s.def.ID, Position: s.def.Pos, Points: pts, Value: float64(turns)})
}

// Revolutions returns revolutions paid since the last reset
func (s *Spinner) Revolutions() int {
	return s.total
}

func (s *Spinner) Reset() {
	s.arc.Reset()
	s.total = 0
}
