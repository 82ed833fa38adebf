package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/table"
)

// Ball is the single long-lived ball of a session
// The physics handle is created once with the table and repositioned on every spawn
type Ball struct {
	world  physics.World
	handle physics.BodyHandle
	def    *table.Definition

	inLane bool
}

func newBall(w physics.World, h physics.BodyHandle, def *table.Definition) *Ball {
	return &Ball{world: w, handle: h, def: def, inLane: true}
}

func (b *Ball) Handle() physics.BodyHandle { return b.handle }

// InLane reports the ball still confined to the shooter lane
func (b *Ball) InLane() bool { return b.inLane }

func (b *Ball) Position() mgl64.Vec3 {
	return b.world.Translation(b.handle)
}

// Spawn moves the ball to the spawn point at rest
func (b *Ball) Spawn(forceLane bool) {
	b.world.SetEnabled(b.handle, true)
	b.world.SetTranslation(b.handle, b.def.Ball.Spawn)
	b.world.SetLinvel(b.handle, mgl64.Vec3{})
	b.world.SetAngvel(b.handle, mgl64.Vec3{})
	b.inLane = forceLane
}

// trackLane clears the lane flag once the ball leaves the shooter lane
// Returns true on the step the ball leaves
func (b *Ball) trackLane(p mgl64.Vec3) bool {
	if !b.inLane {
		return false
	}
	if exitedLane(b.def, p) {
		b.inLane = false
		return true
	}
	return false
}

func exitedLane(def *table.Definition, p mgl64.Vec3) bool {
	if p[2] < def.LaneExitZ {
		return true
	}
	return def.ShooterLane != nil && !def.ShooterLane.Contains(p[0])
}

// Drained reports a position outside the playable bounds
// Every threshold is inclusive
func Drained(def *table.Definition, p mgl64.Vec3) bool {
	if p[1] <= parameter.FloorDropY {
		return true
	}
	if p[2] >= def.DrainZ+parameter.DrainTolerance {
		return true
	}
	if math.Abs(p[0]) >= def.Bounds.Width/2+def.Bounds.RailMargin {
		return true
	}
	return p[2] <= -def.Bounds.Length/2-def.Bounds.RailMargin
}
