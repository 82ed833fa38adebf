package physics

import "github.com/go-gl/mathgl/mgl64"

// ImpulseMode defines how a kick combines with existing velocity
type ImpulseMode uint8

const (
	// ImpulseAdditive adds the kick to existing velocity
	ImpulseAdditive ImpulseMode = iota
	// ImpulseOverride zeroes velocity before the kick (ejects, hard redirects)
	ImpulseOverride
)

// KickProfile defines a scripted impulse
// Profiles are package variables in callers for zero allocation
type KickProfile struct {
	Magnitude float64 // Along the planar direction
	Lift      float64 // Added on +Y after scaling
	Mode      ImpulseMode
}

// Kick applies profile along dir, which is expected to be a unit table-plane vector
// A zero dir kicks straight along +X rather than producing a zero impulse
func Kick(w World, b BodyHandle, dir mgl64.Vec3, profile *KickProfile) mgl64.Vec3 {
	if dir[0] == 0 && dir[2] == 0 {
		dir = mgl64.Vec3{1, 0, 0}
	}

	impulse := mgl64.Vec3{dir[0] * profile.Magnitude, profile.Lift, dir[2] * profile.Magnitude}

	if profile.Mode == ImpulseOverride {
		w.SetLinvel(b, mgl64.Vec3{})
		w.SetAngvel(b, mgl64.Vec3{})
	}
	w.ApplyImpulse(b, impulse)
	return impulse
}
