// Package physicstest provides a scripted physics.World for deterministic tests
package physicstest

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/physics"
)

// Body is the recorded state of a fake rigid body
type Body struct {
	Desc        physics.BodyDesc
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	Linvel      mgl64.Vec3
	Angvel      mgl64.Vec3
	Enabled     bool
	Impulses    []mgl64.Vec3
	KinematicTo *mgl64.Vec3
}

// Joint is the recorded state of a fake revolute joint
type Joint struct {
	Desc      physics.RevoluteDesc
	A, B      physics.BodyHandle
	Target    float64
	Stiffness float64
	Damping   float64
}

// World records every call and replays scripted collision events
// Step moves nothing except applying kinematic targets and integrating impulses into Linvel
type World struct {
	Bodies    map[physics.BodyHandle]*Body
	Colliders map[physics.ColliderHandle]physics.ColliderDesc
	Parents   map[physics.ColliderHandle]physics.BodyHandle
	Joints    map[physics.JointHandle]*Joint
	Steps     int

	// BeforeStep runs at the start of each Step, after scripting, for tests that move bodies
	BeforeStep func(w *World)

	nextBody     physics.BodyHandle
	nextCollider physics.ColliderHandle
	nextJoint    physics.JointHandle
	scripted     []physics.CollisionEvent
	pending      []physics.CollisionEvent
}

func New() *World {
	return &World{
		Bodies:    make(map[physics.BodyHandle]*Body),
		Colliders: make(map[physics.ColliderHandle]physics.ColliderDesc),
		Parents:   make(map[physics.ColliderHandle]physics.BodyHandle),
		Joints:    make(map[physics.JointHandle]*Joint),
	}
}

// Emit queues events to be reported by the next Step
func (w *World) Emit(events ...physics.CollisionEvent) {
	w.scripted = append(w.scripted, events...)
}

// Touch queues a started contact between a and b
func (w *World) Touch(a, b physics.ColliderHandle) {
	w.Emit(physics.CollisionEvent{A: a, B: b, Started: true})
}

func (w *World) body(b physics.BodyHandle) *Body {
	if body, ok := w.Bodies[b]; ok {
		return body
	}
	// Unknown handles read as a detached body, matching a real engine's lenient getters
	return &Body{Rotation: mgl64.QuatIdent()}
}

func (w *World) CreateRigidBody(desc physics.BodyDesc) physics.BodyHandle {
	w.nextBody++
	w.Bodies[w.nextBody] = &Body{
		Desc:     desc,
		Position: desc.Position,
		Rotation: mgl64.QuatRotate(desc.Yaw, mgl64.Vec3{0, 1, 0}),
		Enabled:  true,
	}
	return w.nextBody
}

func (w *World) CreateCollider(desc physics.ColliderDesc, parent physics.BodyHandle) physics.ColliderHandle {
	w.nextCollider++
	w.Colliders[w.nextCollider] = desc
	w.Parents[w.nextCollider] = parent
	return w.nextCollider
}

func (w *World) CreateRevoluteJoint(desc physics.RevoluteDesc, a, b physics.BodyHandle) physics.JointHandle {
	w.nextJoint++
	w.Joints[w.nextJoint] = &Joint{Desc: desc, A: a, B: b}
	return w.nextJoint
}

func (w *World) ConfigureMotorPosition(j physics.JointHandle, target, stiffness, damping float64) {
	if joint, ok := w.Joints[j]; ok {
		joint.Target, joint.Stiffness, joint.Damping = target, stiffness, damping
	}
}

func (w *World) Step() {
	if w.BeforeStep != nil {
		w.BeforeStep(w)
	}
	for _, b := range w.Bodies {
		if b.KinematicTo != nil {
			b.Position = *b.KinematicTo
			b.KinematicTo = nil
		}
	}
	w.pending = append(w.pending, w.scripted...)
	w.scripted = w.scripted[:0]
	w.Steps++
}

func (w *World) DrainCollisionEvents(fn func(physics.CollisionEvent)) {
	events := w.pending
	w.pending = nil
	for _, ev := range events {
		fn(ev)
	}
}

func (w *World) Translation(b physics.BodyHandle) mgl64.Vec3 { return w.body(b).Position }
func (w *World) Rotation(b physics.BodyHandle) mgl64.Quat    { return w.body(b).Rotation }
func (w *World) Linvel(b physics.BodyHandle) mgl64.Vec3      { return w.body(b).Linvel }

func (w *World) ColliderParent(c physics.ColliderHandle) physics.BodyHandle {
	return w.Parents[c]
}

func (w *World) SetTranslation(b physics.BodyHandle, p mgl64.Vec3) {
	if body, ok := w.Bodies[b]; ok {
		body.Position = p
	}
}

func (w *World) SetNextKinematicTranslation(b physics.BodyHandle, p mgl64.Vec3) {
	if body, ok := w.Bodies[b]; ok {
		body.KinematicTo = &p
	}
}

func (w *World) SetLinvel(b physics.BodyHandle, v mgl64.Vec3) {
	if body, ok := w.Bodies[b]; ok {
		body.Linvel = v
	}
}

func (w *World) SetAngvel(b physics.BodyHandle, v mgl64.Vec3) {
	if body, ok := w.Bodies[b]; ok {
		body.Angvel = v
	}
}

func (w *World) ApplyImpulse(b physics.BodyHandle, impulse mgl64.Vec3) {
	if body, ok := w.Bodies[b]; ok {
		body.Impulses = append(body.Impulses, impulse)
		body.Linvel = body.Linvel.Add(impulse)
	}
}

func (w *World) SetEnabled(b physics.BodyHandle, enabled bool) {
	if body, ok := w.Bodies[b]; ok {
		body.Enabled = enabled
	}
}

// SetYaw sets a body's rotation about +Y
func (w *World) SetYaw(b physics.BodyHandle, yaw float64) {
	if body, ok := w.Bodies[b]; ok {
		body.Rotation = mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
	}
}

// LastImpulse returns the most recent impulse on b, or zero
func (w *World) LastImpulse(b physics.BodyHandle) mgl64.Vec3 {
	body := w.body(b)
	if len(body.Impulses) == 0 {
		return mgl64.Vec3{}
	}
	return body.Impulses[len(body.Impulses)-1]
}

var _ physics.World = (*World)(nil)
