// Package geom provides the vector helpers shared by the wave sampler,
// the effect scheduler and the renderers. All vectors are gonum r3 values;
// every operation returns a new value.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DegToRad converts degrees to radians.
const DegToRad = math.Pi / 180

// Up is the vertical axis.
var Up = r3.Vec{Y: 1}

// Horizontal returns v with its vertical component removed.
func Horizontal(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Z: v.Z}
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func Normalize(v r3.Vec) r3.Vec {
	if r3.Norm(v) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(v)
}

// WithZ returns v with its depth coordinate replaced.
func WithZ(v r3.Vec, z float64) r3.Vec {
	v.Z = z
	return v
}

// Yaw rotates vectors about the vertical axis.
// Positive angles turn +X towards -Z (right-handed about +Y).
type Yaw struct {
	sin, cos float64
}

// NewYaw creates a rotation of angle radians about the vertical axis.
func NewYaw(angle float64) Yaw {
	sin, cos := math.Sincos(angle)
	return Yaw{sin: sin, cos: cos}
}

// Rotate returns v rotated about the vertical axis.
func (y Yaw) Rotate(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: v.X*y.cos + v.Z*y.sin,
		Y: v.Y,
		Z: -v.X*y.sin + v.Z*y.cos,
	}
}

// ApproxEqual reports whether a and b differ by at most tol on every axis.
func ApproxEqual(a, b r3.Vec, tol float64) bool {
	d := r3.Sub(a, b)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}
