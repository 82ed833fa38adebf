package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{TwoPi + 0.25, 0.25},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapAngle(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestAngleDeltaAcrossSeam(t *testing.T) {
	// 3.0 rad to -3.0 rad is a short forward hop across +π
	d := AngleDelta(3.0, -3.0)
	want := TwoPi - 6.0
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("Expected delta %v, got %v", want, d)
	}
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 0.4, -1.2, 2.9, -3.1} {
		got := YawFromQuat(QuatFromYaw(yaw))
		if math.Abs(AngleDelta(yaw, got)) > 1e-9 {
			t.Errorf("Expected yaw %v, got %v", yaw, got)
		}
	}
}

func TestPlanarAwayFallback(t *testing.T) {
	p := mgl64.Vec3{1, 5, 1}
	d := PlanarAway(mgl64.Vec3{1, 0, 1}, p, func() float64 { return math.Pi / 2 })
	if math.Abs(d.Len()-1) > 1e-9 {
		t.Fatalf("Expected unit direction, got length %v", d.Len())
	}
	if math.Abs(d[2]-1) > 1e-9 {
		t.Errorf("Expected fallback direction +Z, got %v", d)
	}

	d = PlanarAway(mgl64.Vec3{}, mgl64.Vec3{3, 9, 4}, func() float64 { return 0 })
	if math.Abs(d[0]-0.6) > 1e-9 || math.Abs(d[2]-0.8) > 1e-9 || d[1] != 0 {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", d)
	}
}
