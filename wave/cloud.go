package wave

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/geom"
)

// Class selects how a cached offset is rendered.
type Class uint8

const (
	ClassInterior Class = iota // water body
	ClassEdge                  // cloud crest
)

// String returns a short name for logs and CSV output.
func (c Class) String() string {
	if c == ClassEdge {
		return "edge"
	}
	return "interior"
}

// Cloud holds the sampled offsets relative to the anchor, already rotated.
type Cloud struct {
	Edge     *geom.PointSet
	Interior *geom.PointSet
}

// NewCloud creates an empty cloud sized for s.
func NewCloud(s Shape) *Cloud {
	n := s.Capacity()
	return &Cloud{
		Edge:     geom.NewPointSet(2 * s.Rows),
		Interior: geom.NewPointSet(n),
	}
}

// Add inserts p into the set for class.
func (c *Cloud) Add(p r3.Vec, class Class) {
	if class == ClassEdge {
		c.Edge.Add(p)
		return
	}
	c.Interior.Add(p)
}

// Points returns the offsets of class in insertion order.
func (c *Cloud) Points(class Class) []r3.Vec {
	if class == ClassEdge {
		return c.Edge.Points()
	}
	return c.Interior.Points()
}

// Len returns the number of distinct cached offsets.
func (c *Cloud) Len() int {
	return c.Edge.Len() + c.Interior.Len()
}

// Clear empties both sets.
func (c *Cloud) Clear() {
	c.Edge.Clear()
	c.Interior.Clear()
}
