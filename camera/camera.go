// Package camera provides an orbit camera for viewing waves.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/geom"
)

// Pitch limits keep the camera off the poles.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// Camera orbits a target point.
type Camera struct {
	// Target is the point the camera looks at
	Target r3.Vec

	// Orbit angles in degrees; pitch is measured above the horizon
	Yaw, Pitch float64

	// Distance from the target
	Distance float64

	// Zoom constraints
	MinDistance, MaxDistance float64

	home orbit
}

// orbit is the state Reset returns to.
type orbit struct {
	Target     r3.Vec
	Yaw, Pitch float64
	Distance   float64
}

// New creates a camera orbiting target.
func New(target r3.Vec, yaw, pitch, distance, minDistance, maxDistance float64) *Camera {
	if minDistance <= 0 {
		minDistance = 1
	}
	if maxDistance < minDistance {
		maxDistance = minDistance
	}
	c := &Camera{
		Target:      target,
		Yaw:         yaw,
		Pitch:       clamp(pitch, MinPitch, MaxPitch),
		Distance:    clamp(distance, minDistance, maxDistance),
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}
	c.home = orbit{Target: c.Target, Yaw: c.Yaw, Pitch: c.Pitch, Distance: c.Distance}
	return c
}

// Position returns the camera eye position.
func (c *Camera) Position() r3.Vec {
	yaw := c.Yaw * geom.DegToRad
	pitch := c.Pitch * geom.DegToRad
	horiz := c.Distance * math.Cos(pitch)
	offset := r3.Vec{
		X: horiz * math.Sin(yaw),
		Y: c.Distance * math.Sin(pitch),
		Z: horiz * math.Cos(yaw),
	}
	return r3.Add(c.Target, offset)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vec {
	return r3.Unit(r3.Sub(c.Target, c.Position()))
}

// Orbit turns the camera by the given angles in degrees.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 360)
	c.Pitch = clamp(c.Pitch+dPitch, MinPitch, MaxPitch)
}

// Pan moves the target in the camera's ground plane.
// right and forward are in world units.
func (c *Camera) Pan(right, forward float64) {
	fwd := geom.Normalize(geom.Horizontal(c.Forward()))
	side := r3.Cross(fwd, geom.Up)
	c.Target = r3.Add(c.Target, r3.Add(r3.Scale(right, side), r3.Scale(forward, fwd)))
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by factor (factor > 1 moves closer).
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Follow moves the target to p.
func (c *Camera) Follow(p r3.Vec) {
	c.Target = p
}

// Reset returns the camera to the state it was created with.
func (c *Camera) Reset() {
	c.Target = c.home.Target
	c.Yaw = c.home.Yaw
	c.Pitch = c.home.Pitch
	c.Distance = c.home.Distance
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
