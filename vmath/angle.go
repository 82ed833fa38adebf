package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const TwoPi = 2 * math.Pi

// WrapAngle folds a into [-π, π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a - math.Pi
}

// AngleDelta returns the shortest signed rotation from prev to next
func AngleDelta(prev, next float64) float64 {
	return WrapAngle(next - prev)
}

// YawFromQuat extracts rotation about +Y (table normal)
func YawFromQuat(q mgl64.Quat) float64 {
	x, y, z := q.V[0], q.V[1], q.V[2]
	return math.Atan2(2*(q.W*y+x*z), 1-2*(x*x+y*y))
}

// QuatFromYaw builds a rotation about +Y
func QuatFromYaw(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 is Clamp(v, 0, 1)
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
