package physics

import "github.com/go-gl/mathgl/mgl64"

// Coordinates: Y is up (table normal), X spans the table, +Z points toward the drain

// BodyHandle identifies a rigid body inside a World
type BodyHandle uint32

// ColliderHandle identifies a collider inside a World
type ColliderHandle uint32

// JointHandle identifies an impulse joint inside a World
type JointHandle uint32

// NoBody attaches a collider to the world's fixed ground
const NoBody BodyHandle = 0

// BodyKind selects the rigid body integration model
type BodyKind uint8

const (
	BodyFixed BodyKind = iota
	BodyDynamic
	BodyKinematic
)

// BodyDesc describes a rigid body at creation
type BodyDesc struct {
	Kind           BodyKind
	Position       mgl64.Vec3
	Yaw            float64 // Initial rotation about +Y
	LinearDamping  float64 // Velocity decay rate per second
	AngularDamping float64
	CCD            bool // Continuous collision for fast movers
}

// ShapeKind enumerates collider primitives
type ShapeKind uint8

const (
	ShapeBall     ShapeKind = iota // Radius
	ShapeCuboid                    // HalfExtents
	ShapeCylinder                  // Radius, HalfExtents[1] as half height
)

// ColliderDesc describes a collider attached to a body
type ColliderDesc struct {
	Shape       ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
	Offset      mgl64.Vec3 // Relative to the parent body, or world position for NoBody
	Yaw         float64    // Relative rotation about +Y
	Density     float64    // Zero uses 1
	Friction    float64
	Restitution float64
	Sensor      bool // Overlap detection only, no contact response
	Events      bool // Report start/stop to DrainCollisionEvents
	Ground      bool // Horizontal support under the playfield; planar engines treat it as implicit
}

// RevoluteDesc hinges body B to body A about +Y
type RevoluteDesc struct {
	AnchorA  mgl64.Vec3 // Hinge point in A's local frame
	AnchorB  mgl64.Vec3 // Hinge point in B's local frame
	Limited  bool
	LimitMin float64
	LimitMax float64
}

// CollisionEvent is one contact transition from the last step
type CollisionEvent struct {
	A, B    ColliderHandle
	Started bool // false means the pair separated
}

// World is the physics engine seen by the simulation core
// All methods are called from the simulation goroutine only
type World interface {
	CreateRigidBody(desc BodyDesc) BodyHandle
	CreateCollider(desc ColliderDesc, parent BodyHandle) ColliderHandle
	CreateRevoluteJoint(desc RevoluteDesc, a, b BodyHandle) JointHandle

	// ConfigureMotorPosition drives a revolute joint toward target radians
	ConfigureMotorPosition(j JointHandle, target, stiffness, damping float64)

	// Step advances the world by its fixed timestep and queues collision events
	Step()

	// DrainCollisionEvents delivers and clears events queued by Step
	DrainCollisionEvents(fn func(CollisionEvent))

	Translation(b BodyHandle) mgl64.Vec3
	Rotation(b BodyHandle) mgl64.Quat
	Linvel(b BodyHandle) mgl64.Vec3

	// ColliderParent returns the body a collider is attached to
	ColliderParent(c ColliderHandle) BodyHandle

	SetTranslation(b BodyHandle, p mgl64.Vec3)
	SetNextKinematicTranslation(b BodyHandle, p mgl64.Vec3)
	SetLinvel(b BodyHandle, v mgl64.Vec3)
	SetAngvel(b BodyHandle, w mgl64.Vec3)
	ApplyImpulse(b BodyHandle, impulse mgl64.Vec3)
	SetEnabled(b BodyHandle, enabled bool)
}
