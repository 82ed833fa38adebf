// Package chipmunk implements physics.World on Chipmunk2D
//
// The table is simulated top-down: world X maps to space X and world Z maps to space Y.
// Height is carried per body and never integrated; rotations about +Y map to
// negated Chipmunk angles so quaternions read back with the same yaw sign.
package chipmunk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/pinball/physics"
)

// eventCollisionType marks shapes whose contacts are reported
const eventCollisionType cp.CollisionType = 1

// ccdSubsteps splits each step when any body requests continuous collision
const ccdSubsteps = 3

type body struct {
	cp      *cp.Body
	kind    physics.BodyKind
	height  float64
	shapes  []*cp.Shape
	enabled bool

	mass, moment float64
}

type joint struct {
	a      *body
	pivot  *cp.Constraint
	limit  *cp.Constraint
	spring *cp.Constraint
	b      *body
}

// Config tunes the Chipmunk space
type Config struct {
	Gravity    mgl64.Vec3 // Only the X/Z components act
	Step       float64    // Seconds per Step
	Iterations int
}

// World is a physics.World backed by a cp.Space
type World struct {
	space    *cp.Space
	dt       float64
	substeps int

	bodies    []*body // index = handle, 0 is the ground
	colliders []*cp.Shape
	parents   []physics.BodyHandle
	joints    []*joint

	pending []physics.CollisionEvent
}

// New creates an empty world
func New(cfg Config) *World {
	space := cp.NewSpace()
	space.SetGravity(toPlane(cfg.Gravity))
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}

	w := &World{
		space:     space,
		dt:        cfg.Step,
		substeps:  1,
		bodies:    []*body{{cp: space.StaticBody, kind: physics.BodyFixed, enabled: true}},
		colliders: []*cp.Shape{nil},
		parents:   []physics.BodyHandle{physics.NoBody},
		joints:    []*joint{nil},
	}

	handler := space.NewCollisionHandler(eventCollisionType, eventCollisionType)
	handler.BeginFunc = w.begin
	handler.SeparateFunc = w.separate

	return w
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v[0], Y: v[2]}
}

func (w *World) get(h physics.BodyHandle) *body {
	if int(h) < len(w.bodies) {
		return w.bodies[h]
	}
	return nil
}

func (w *World) handleOf(s *cp.Shape) (physics.ColliderHandle, bool) {
	h, ok := s.UserData.(physics.ColliderHandle)
	return h, ok
}

func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ha, okA := w.handleOf(a)
	hb, okB := w.handleOf(b)
	if okA && okB {
		w.pending = append(w.pending, physics.CollisionEvent{A: ha, B: hb, Started: true})
	}
	return true
}

func (w *World) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b := arb.Shapes()
	ha, okA := w.handleOf(a)
	hb, okB := w.handleOf(b)
	if okA && okB {
		w.pending = append(w.pending, physics.CollisionEvent{A: ha, B: hb, Started: false})
	}
}

func (w *World) CreateRigidBody(desc physics.BodyDesc) physics.BodyHandle {
	var cb *cp.Body
	switch desc.Kind {
	case physics.BodyDynamic:
		// Placeholder mass until colliders accumulate real properties
		cb = cp.NewBody(1, 1)
		if desc.LinearDamping > 0 || desc.AngularDamping > 0 {
			cb.SetVelocityUpdateFunc(dampedVelocity(desc.LinearDamping, desc.AngularDamping))
		}
		if desc.CCD {
			w.substeps = ccdSubsteps
		}
	case physics.BodyKinematic:
		cb = cp.NewKinematicBody()
	default:
		cb = cp.NewStaticBody()
	}
	cb.SetPosition(toPlane(desc.Position))
	cb.SetAngle(-desc.Yaw)
	w.space.AddBody(cb)

	w.bodies = append(w.bodies, &body{
		cp:      cb,
		kind:    desc.Kind,
		height:  desc.Position[1],
		enabled: true,
	})
	return physics.BodyHandle(len(w.bodies) - 1)
}

// dampedVelocity applies per-body exponential decay on top of the space integrator
func dampedVelocity(linear, angular float64) cp.BodyVelocityFunc {
	return func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity, damping*math.Exp(-linear*dt), dt)
		b.SetAngularVelocity(b.AngularVelocity() * math.Exp(-(angular-linear)*dt))
	}
}

func (w *World) CreateCollider(desc physics.ColliderDesc, parent physics.BodyHandle) physics.ColliderHandle {
	b := w.get(parent)
	if b == nil {
		b = w.bodies[physics.NoBody]
	}

	handle := physics.ColliderHandle(len(w.colliders))
	w.parents = append(w.parents, parent)

	// The playfield plane is implicit top-down; keep the handle without a shape
	if desc.Ground {
		w.colliders = append(w.colliders, nil)
		return handle
	}

	offset := toPlane(desc.Offset)
	var shape *cp.Shape
	switch desc.Shape {
	case physics.ShapeBall, physics.ShapeCylinder:
		shape = cp.NewCircle(b.cp, desc.Radius, offset)
	default:
		hx, hz := desc.HalfExtents[0], desc.HalfExtents[2]
		verts := []cp.Vector{{X: -hx, Y: -hz}, {X: hx, Y: -hz}, {X: hx, Y: hz}, {X: -hx, Y: hz}}
		shape = cp.NewPolyShape(b.cp, len(verts), verts, cp.NewTransformRigid(offset, -desc.Yaw), 0)
	}

	shape.SetFriction(desc.Friction)
	shape.SetElasticity(desc.Restitution)
	shape.SetSensor(desc.Sensor)
	if desc.Events {
		shape.SetCollisionType(eventCollisionType)
	}

	shape.UserData = handle
	w.colliders = append(w.colliders, shape)

	if b.kind == physics.BodyDynamic && !desc.Sensor {
		w.accumulateMass(b, desc, offset)
	}

	b.shapes = append(b.shapes, shape)
	if b.enabled {
		w.space.AddShape(shape)
	}
	return handle
}

// accumulateMass uses solid volumes so impulses keep their 3D meaning
func (w *World) accumulateMass(b *body, desc physics.ColliderDesc, offset cp.Vector) {
	density := desc.Density
	if density <= 0 {
		density = 1
	}

	var m, i float64
	switch desc.Shape {
	case physics.ShapeBall:
		m = density * 4.0 / 3.0 * math.Pi * desc.Radius * desc.Radius * desc.Radius
		i = cp.MomentForCircle(m, 0, desc.Radius, offset)
	case physics.ShapeCylinder:
		m = density * math.Pi * desc.Radius * desc.Radius * 2 * desc.HalfExtents[1]
		i = cp.MomentForCircle(m, 0, desc.Radius, offset)
	default:
		h := desc.HalfExtents
		m = density * 8 * h[0] * h[1] * h[2]
		i = cp.MomentForBox(m, 2*h[0], 2*h[2]) + m*offset.LengthSq()
	}

	b.mass += m
	b.moment += i
	b.cp.SetMass(b.mass)
	b.cp.SetMoment(b.moment)
}

func (w *World) CreateRevoluteJoint(desc physics.RevoluteDesc, a, b physics.BodyHandle) physics.JointHandle {
	ba, bb := w.get(a), w.get(b)
	if ba == nil {
		ba = w.bodies[physics.NoBody]
	}
	if bb == nil {
		return 0
	}

	j := &joint{a: ba, b: bb}
	j.pivot = w.space.AddConstraint(cp.NewPivotJoint2(ba.cp, bb.cp, toPlane(desc.AnchorA), toPlane(desc.AnchorB)))
	if desc.Limited {
		// Chipmunk measures the opposite sense of rotation
		j.limit = w.space.AddConstraint(cp.NewRotaryLimitJoint(ba.cp, bb.cp, -desc.LimitMax, -desc.LimitMin))
	}

	w.joints = append(w.joints, j)
	return physics.JointHandle(len(w.joints) - 1)
}

func (w *World) ConfigureMotorPosition(h physics.JointHandle, target, stiffness, damping float64) {
	if int(h) >= len(w.joints) || w.joints[h] == nil {
		return
	}
	j := w.joints[h]

	// Acceleration-based gains scale with the driven body's moment
	moment := j.b.moment
	if moment <= 0 {
		moment = 1
	}

	if j.spring == nil {
		j.spring = w.space.AddConstraint(cp.NewDampedRotarySpring(j.a.cp, j.b.cp, -target, stiffness*moment, damping*moment))
		return
	}

	spring := j.spring.Class.(*cp.DampedRotarySpring)
	spring.RestAngle = -target
	spring.Stiffness = stiffness * moment
	spring.Damping = damping * moment
	j.b.cp.Activate()
}

func (w *World) Step() {
	h := w.dt / float64(w.substeps)
	for i := 0; i < w.substeps; i++ {
		w.space.Step(h)
	}
}

func (w *World) DrainCollisionEvents(fn func(physics.CollisionEvent)) {
	events := w.pending
	w.pending = nil
	for _, ev := range events {
		fn(ev)
	}
}

func (w *World) Translation(h physics.BodyHandle) mgl64.Vec3 {
	b := w.get(h)
	if b == nil {
		return mgl64.Vec3{}
	}
	p := b.cp.Position()
	return mgl64.Vec3{p.X, b.height, p.Y}
}

func (w *World) Rotation(h physics.BodyHandle) mgl64.Quat {
	b := w.get(h)
	if b == nil {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(-b.cp.Angle(), mgl64.Vec3{0, 1, 0})
}

func (w *World) Linvel(h physics.BodyHandle) mgl64.Vec3 {
	b := w.get(h)
	if b == nil {
		return mgl64.Vec3{}
	}
	v := b.cp.Velocity()
	return mgl64.Vec3{v.X, 0, v.Y}
}

func (w *World) ColliderParent(c physics.ColliderHandle) physics.BodyHandle {
	if int(c) < len(w.parents) {
		return w.parents[c]
	}
	return physics.NoBody
}

func (w *World) SetTranslation(h physics.BodyHandle, p mgl64.Vec3) {
	b := w.get(h)
	if b == nil || b.kind == physics.BodyFixed {
		return
	}
	b.height = p[1]
	b.cp.SetPosition(toPlane(p))
	if b.kind == physics.BodyKinematic {
		b.cp.SetVelocity(0, 0)
	}
}

// SetNextKinematicTranslation sets the velocity that reaches p after one Step
func (w *World) SetNextKinematicTranslation(h physics.BodyHandle, p mgl64.Vec3) {
	b := w.get(h)
	if b == nil || b.kind != physics.BodyKinematic || w.dt <= 0 {
		return
	}
	cur := b.cp.Position()
	next := toPlane(p)
	b.cp.SetVelocityVector(next.Sub(cur).Mult(1 / w.dt))
}

func (w *World) SetLinvel(h physics.BodyHandle, v mgl64.Vec3) {
	if b := w.get(h); b != nil && b.kind != physics.BodyFixed {
		b.cp.SetVelocityVector(toPlane(v))
	}
}

func (w *World) SetAngvel(h physics.BodyHandle, v mgl64.Vec3) {
	if b := w.get(h); b != nil && b.kind != physics.BodyFixed {
		b.cp.SetAngularVelocity(-v[1])
	}
}

func (w *World) ApplyImpulse(h physics.BodyHandle, impulse mgl64.Vec3) {
	b := w.get(h)
	if b == nil || b.kind != physics.BodyDynamic {
		return
	}
	b.cp.ApplyImpulseAtWorldPoint(toPlane(impulse), b.cp.Position())
	b.cp.Activate()
}

// SetEnabled removes or restores the body and its shapes in the space
// Must not be called from inside Step
func (w *World) SetEnabled(h physics.BodyHandle, enabled bool) {
	b := w.get(h)
	if b == nil || h == physics.NoBody || b.enabled == enabled {
		return
	}
	b.enabled = enabled

	if !enabled {
		for _, s := range b.shapes {
			w.space.RemoveShape(s)
		}
		w.space.RemoveBody(b.cp)
		return
	}

	w.space.AddBody(b.cp)
	for _, s := range b.shapes {
		w.space.AddShape(s)
	}
	b.cp.Activate()
}

var _ physics.World = (*World)(nil)
