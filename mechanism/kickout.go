package mechanism

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/table"
)

// Kickout captures the ball in a pocket and ejects it after a dwell
type Kickout struct {
	def   *table.KickoutDef
	kick  physics.KickProfile
	eject engine.Deadline

	locked bool
	pocket mgl64.Vec3
}

func NewKickout(def *table.KickoutDef) *Kickout {
	return &Kickout{
		def: def,
		kick: physics.KickProfile{
			Magnitude: def.Impulse,
			Lift:      def.Lift,
			Mode:      physics.ImpulseOverride,
		},
	}
}

// Locked reports a captured ball awaiting eject
func (k *Kickout) Locked() bool {
	return k.locked
}

// Capture locks the ball in the pocket; a second capture while locked is ignored
func (k *Kickout) Capture(ctx *Context) bool {
	if k.locked {
		return false
	}
	k.locked = true

	pts := ctx.Score.Award(k.def.Score, k.def.Boost)

	k.pocket = mgl64.Vec3{k.def.Pos[0], parameter.KickoutPocketY, k.def.Pos[2]}
	ctx.World.SetLinvel(ctx.Ball, mgl64.Vec3{})
	ctx.World.SetAngvel(ctx.Ball, mgl64.Vec3{})
	ctx.World.SetTranslation(ctx.Ball, k.pocket)
	ctx.World.SetEnabled(ctx.Ball, false)

	k.eject.Arm(ctx.Now, k.def.Dwell)
	ctx.emit(event.GameEvent{Type: event.EventKickoutCapture, ID: k.def.ID, Position: k.pocket, Points: pts})
	return true
}

// Update ejects once the dwell has elapsed
// The eject cue sits at the pocket, not wherever the ball has moved since
func (k *Kickout) Update(ctx *Context) {
	if !k.locked || !k.eject.Fire(ctx.Now) {
		return
	}
	ctx.World.SetEnabled(ctx.Ball, true)
	physics.Kick(ctx.World, ctx.Ball, k.def.EjectDir, &k.kick)
	k.locked = false
	ctx.emit(event.GameEvent{Type: event.EventKickoutEject, ID: k.def.ID, Position: k.pocket})
}

// Reset unlocks without ejecting; the caller owns re-enabling the ball
func (k *Kickout) Reset() {
	k.locked = false
	k.eject.Disarm()
}
