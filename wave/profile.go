package wave

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/geom"
)

// Profile is one parabolic cross-section, spanning Start to Apex.
type Profile struct {
	Start   r3.Vec
	Apex    r3.Vec
	Mid     r3.Vec  // halfway between Start and Apex
	Tangent r3.Vec  // unit vector from Start to Apex
	HalfLen float64 // half the Start to Apex distance
	Normal  r3.Vec  // unit in-plane normal, X >= 0
}

// BuildProfile derives the cross-section frame for the chord start -> apex.
// start and apex must differ.
func BuildProfile(start, apex r3.Vec) Profile {
	chord := r3.Sub(apex, start)
	length := r3.Norm(chord)

	normal := r3.Unit(r3.Vec{X: chord.Y, Y: -chord.X})
	if normal.X < 0 {
		normal = r3.Scale(-1, normal)
	}

	return Profile{
		Start:   start,
		Apex:    apex,
		Mid:     r3.Add(start, r3.Scale(0.5, chord)),
		Tangent: r3.Scale(1/length, chord),
		HalfLen: length / 2,
		Normal:  normal,
	}
}

// Height returns the parabola offset at x along the chord for a peak of h.
// It is h at x = 0 and zero at x = ±HalfLen.
func (p Profile) Height(x, h float64) float64 {
	return -h/(p.HalfLen*p.HalfLen)*x*x + h
}

// At returns the point on the curve at x along the chord, measured from Mid.
func (p Profile) At(x, h float64) r3.Vec {
	v := r3.Add(p.Mid, r3.Scale(x, p.Tangent))
	return r3.Add(v, r3.Scale(p.Height(x, h), p.Normal))
}

// frontProfile returns the tube cross-section running up to the crest.
func frontProfile(s Shape) Profile {
	return BuildProfile(r3.Vec{X: -s.LengthFront}, crest(s))
}

// backProfile returns the slope running from behind the wave up to the crest.
func backProfile(s Shape) Profile {
	return BuildProfile(r3.Vec{X: s.LengthBack}, crest(s))
}

func crest(s Shape) r3.Vec {
	return r3.Vec{X: -0.5 * s.LengthFront, Y: s.Height}
}

// facing returns the rotation turning the local wave frame towards yaw degrees.
func facing(yaw float64) geom.Yaw {
	return geom.NewYaw((-yaw + 90) * geom.DegToRad)
}
