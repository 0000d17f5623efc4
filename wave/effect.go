package wave

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/geom"
	"github.com/pthm-cable/wavefx/particle"
)

// DefaultSpeed is the distance the wave travels per run.
const DefaultSpeed = 0.2

// State is the playback state of an Effect.
type State uint8

const (
	StateUninitialized State = iota // cache not built for this sequence
	StateActive                     // cache built, replaying
	StateCancelled                  // anchor lost, terminal
)

// String returns a short name for logs.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Options selects how the cached offsets are displayed.
type Options struct {
	Primary    particle.Kind // interior (water) particles
	Secondary  particle.Kind // edge (cloud) particles
	CloudColor *color.RGBA   // optional edge color override

	Speed float64 // travel per run along the initial facing

	// Display defaults for interior particles.
	ParticleSpeed float64
	ParticleCount int
}

// DefaultOptions returns drip water with cloud crests.
func DefaultOptions() Options {
	return Options{
		Primary:       particle.KindDripWater,
		Secondary:     particle.KindCloud,
		Speed:         DefaultSpeed,
		ParticleCount: 1,
	}
}

// Effect replays a cached wave cloud around its anchor on every run.
// It implements effect.Runner.
type Effect struct {
	shape    Shape
	opts     Options
	state    State
	velocity r3.Vec
	cloud    *Cloud
	rebuilds int
}

// New creates an effect for shape. The cloud is built on the first run.
func New(shape Shape, opts Options) *Effect {
	return &Effect{
		shape: shape,
		opts:  opts,
		cloud: NewCloud(shape),
	}
}

// Run implements effect.Runner.
func (e *Effect) Run(h effect.Host) {
	if e.state == StateCancelled {
		h.Cancel()
		return
	}

	loc, ok := h.Anchor()
	if !ok {
		e.state = StateCancelled
		h.Cancel()
		return
	}

	if e.state == StateUninitialized {
		dir := geom.Normalize(geom.Horizontal(loc.Direction()))
		e.velocity = r3.Scale(e.opts.Speed, dir)
		e.Invalidate(loc.Yaw)
	}

	h.Move(e.velocity)
	origin := r3.Add(loc.Pos, e.velocity)

	for _, v := range e.cloud.Edge.Points() {
		h.Display(effect.Particle{
			Kind:  e.opts.Secondary,
			Pos:   r3.Add(origin, v),
			Color: e.opts.CloudColor,
			Count: 1,
		})
	}

	for _, v := range e.cloud.Interior.Points() {
		h.Display(effect.Particle{
			Kind:  e.opts.Primary,
			Pos:   r3.Add(origin, v),
			Speed: e.opts.ParticleSpeed,
			Count: e.opts.ParticleCount,
		})
	}
}

// Reset implements effect.Runner. The next run rebuilds the cloud and
// recomputes the velocity from the anchor's facing at that time.
func (e *Effect) Reset() {
	e.state = StateUninitialized
}

// Invalidate rebuilds the cloud from the current shape facing yaw degrees.
// Call it after SetShape to apply a change mid-sequence.
func (e *Effect) Invalidate(yaw float64) {
	e.state = StateActive
	Sample(e.cloud, e.shape, yaw)
	e.rebuilds++
}

// SetShape replaces the shape parameters. The cloud keeps its old contents
// until the next Invalidate or Reset.
func (e *Effect) SetShape(s Shape) {
	e.shape = s
}

// Shape returns the current shape parameters.
func (e *Effect) Shape() Shape { return e.shape }

// Options returns the display options.
func (e *Effect) Options() Options { return e.opts }

// State returns the playback state.
func (e *Effect) State() State { return e.state }

// Velocity returns the per-run translation.
func (e *Effect) Velocity() r3.Vec { return e.velocity }

// SetVelocity overrides the per-run translation until the next sequence starts.
func (e *Effect) SetVelocity(v r3.Vec) { e.velocity = v }

// Cloud returns the cached offsets. It is rebuilt in place.
func (e *Effect) Cloud() *Cloud { return e.cloud }

// Rebuilds returns how many times the cloud has been sampled.
func (e *Effect) Rebuilds() int { return e.rebuilds }
