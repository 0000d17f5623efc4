// Package effect schedules particle effects and connects them to their anchor and display host.
package effect

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/particle"
)

// Particle is a single display request.
type Particle struct {
	Kind  particle.Kind
	Pos   r3.Vec
	Color *color.RGBA // nil = kind default
	Speed float64     // extra spread passed through to the host
	Count int
}

// Display draws particles. Requests are fire-and-forget.
type Display interface {
	Display(p Particle)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(p Particle)

// Display implements Display.
func (f DisplayFunc) Display(p Particle) { f(p) }

// Host is what a running effect sees of its scheduler for a single run.
type Host interface {
	// Anchor returns the current anchor location, or false when unavailable.
	Anchor() (Location, bool)
	// Move translates the anchor by d.
	Move(d r3.Vec)
	// Display forwards a particle to the display host.
	Display(p Particle)
	// Cancel stops every future run of the effect.
	Cancel()
}

// Runner is an effect driven by the Manager.
type Runner interface {
	// Run is called once per scheduled tick.
	Run(h Host)
	// Reset is called when a repeating sequence restarts.
	Reset()
}
