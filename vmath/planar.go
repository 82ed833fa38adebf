package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// planarEpsilon is the length below which a direction is considered degenerate
const planarEpsilon = 1e-6

// Flatten drops the height component, leaving the table-plane vector
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// PlanarAway returns the unit table-plane direction from origin toward p
// Coincident points fall back to a direction from angle(), which must return radians
func PlanarAway(origin, p mgl64.Vec3, angle func() float64) mgl64.Vec3 {
	d := Flatten(p.Sub(origin))
	if l := d.Len(); l > planarEpsilon {
		return d.Mul(1 / l)
	}
	a := angle()
	return mgl64.Vec3{math.Cos(a), 0, math.Sin(a)}
}

// PlanarNormalize normalizes the table-plane part of v, zero stays zero
func PlanarNormalize(v mgl64.Vec3) mgl64.Vec3 {
	d := Flatten(v)
	if l := d.Len(); l > planarEpsilon {
		return d.Mul(1 / l)
	}
	return mgl64.Vec3{}
}
