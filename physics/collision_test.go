package physics_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/physics/physicstest"
)

func TestKickAdditive(t *testing.T) {
	w := physicstest.New()
	b := w.CreateRigidBody(physics.BodyDesc{Kind: physics.BodyDynamic})
	w.SetLinvel(b, mgl64.Vec3{1, 0, 0})

	got := physics.Kick(w, b, mgl64.Vec3{0, 0, -1}, &physics.KickProfile{Magnitude: 2, Lift: 0.5})
	if got != (mgl64.Vec3{0, 0.5, -2}) {
		t.Errorf("Expected impulse (0, 0.5, -2), got %v", got)
	}
	if v := w.Linvel(b); v != (mgl64.Vec3{1, 0.5, -2}) {
		t.Errorf("Expected velocity preserved plus kick, got %v", v)
	}
}

func TestKickOverrideAndZeroDir(t *testing.T) {
	w := physicstest.New()
	b := w.CreateRigidBody(physics.BodyDesc{Kind: physics.BodyDynamic})
	w.SetLinvel(b, mgl64.Vec3{5, 5, 5})

	physics.Kick(w, b, mgl64.Vec3{}, &physics.KickProfile{Magnitude: 3, Mode: physics.ImpulseOverride})
	if v := w.Linvel(b); v != (mgl64.Vec3{3, 0, 0}) {
		t.Errorf("Expected override kick along +X, got %v", v)
	}
}
