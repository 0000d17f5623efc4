// Package components defines ECS components for wave anchors.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Position is an anchor's world position.
type Position struct {
	r3.Vec
}

// Facing is an anchor's orientation in degrees.
type Facing struct {
	Yaw   float64 // 0 faces +Z
	Pitch float64 // positive looks down
}

// Turn rotates an anchor's facing every tick.
type Turn struct {
	Rate float64 // degrees per tick
}

// Lifetime counts down the ticks an anchor has left.
type Lifetime struct {
	Remaining int32
	Forever   bool
}

// Anchor identifies an entity that effects can be attached to.
type Anchor struct {
	ID   uint32
	Name string
}
