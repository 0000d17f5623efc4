package effect

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/geom"
)

// Location is an anchor position with a facing.
// Yaw is in degrees; yaw 0 faces +Z and yaw 90 faces -X.
// Pitch is in degrees; positive pitch looks down.
type Location struct {
	Pos   r3.Vec
	Yaw   float64
	Pitch float64
}

// Direction returns the unit facing vector.
func (l Location) Direction() r3.Vec {
	yaw := l.Yaw * geom.DegToRad
	pitch := l.Pitch * geom.DegToRad
	xz := math.Cos(pitch)
	return r3.Vec{
		X: -xz * math.Sin(yaw),
		Y: -math.Sin(pitch),
		Z: xz * math.Cos(yaw),
	}
}

// Add returns the location translated by d.
func (l Location) Add(d r3.Vec) Location {
	l.Pos = r3.Add(l.Pos, d)
	return l
}

// Anchor resolves the location an effect renders relative to.
type Anchor interface {
	// Location returns the current location, or false when the anchor is gone.
	Location() (Location, bool)
	// Translate moves the anchor by d.
	Translate(d r3.Vec)
}

// StaticAnchor is an anchor that only moves when an effect translates it.
type StaticAnchor struct {
	loc     Location
	removed bool
}

// NewStaticAnchor creates an anchor at loc.
func NewStaticAnchor(loc Location) *StaticAnchor {
	return &StaticAnchor{loc: loc}
}

// Location implements Anchor.
func (a *StaticAnchor) Location() (Location, bool) {
	if a.removed {
		return Location{}, false
	}
	return a.loc, true
}

// Translate implements Anchor.
func (a *StaticAnchor) Translate(d r3.Vec) {
	a.loc = a.loc.Add(d)
}

// Remove makes the anchor unavailable.
func (a *StaticAnchor) Remove() {
	a.removed = true
}
