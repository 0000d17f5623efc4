// Package wave builds the point cloud of a traveling water wave and replays it
// as particles every tick.
//
// The wave is made of two parabolic cross-sections in the X/Y plane: the
// front tube running from (-LengthFront, 0, 0) up to the crest apex and the
// back slope running from (LengthBack, 0, 0) up to the same apex. Each is
// swept along Z across Width and the result is turned to face the anchor.
package wave

import (
	"errors"
	"fmt"
)

// ErrDegenerateShape is returned by Shape.Validate.
var ErrDegenerateShape = errors.New("degenerate wave shape")

// Shape holds the parameters the point cloud is built from.
// Counts must be >= 1 and lengths and width > 0; the sampler does not check.
type Shape struct {
	ParticlesFront int     `yaml:"particles_front"` // samples along the front tube
	ParticlesBack  int     `yaml:"particles_back"`  // samples along the back slope
	Rows           int     `yaml:"rows"`            // samples across the width
	LengthFront    float64 `yaml:"length_front"`    // origin to first point of the wave
	LengthBack     float64 `yaml:"length_back"`     // origin to last point of the wave
	DepthFront     float64 `yaml:"depth_front"`     // depth of the tube parabola
	HeightBack     float64 `yaml:"height_back"`     // height of the back parabola arc
	Height         float64 `yaml:"height"`          // crest apex height
	Width          float64 `yaml:"width"`           // total sweep, centered on the origin
}

// DefaultShape returns the stock wave.
func DefaultShape() Shape {
	return Shape{
		ParticlesFront: 10,
		ParticlesBack:  10,
		Rows:           20,
		LengthFront:    1.5,
		LengthBack:     3,
		DepthFront:     1,
		HeightBack:     0.5,
		Height:         2,
		Width:          5,
	}
}

// Validate reports parameters that would put NaN or Inf into the cloud.
func (s Shape) Validate() error {
	switch {
	case s.ParticlesFront < 1:
		return fmt.Errorf("%w: particles_front must be >= 1, got %d", ErrDegenerateShape, s.ParticlesFront)
	case s.ParticlesBack < 1:
		return fmt.Errorf("%w: particles_back must be >= 1, got %d", ErrDegenerateShape, s.ParticlesBack)
	case s.Rows < 1:
		return fmt.Errorf("%w: rows must be >= 1, got %d", ErrDegenerateShape, s.Rows)
	case s.LengthFront <= 0:
		return fmt.Errorf("%w: length_front must be > 0, got %g", ErrDegenerateShape, s.LengthFront)
	case s.LengthBack <= 0:
		return fmt.Errorf("%w: length_back must be > 0, got %g", ErrDegenerateShape, s.LengthBack)
	case s.Width <= 0:
		return fmt.Errorf("%w: width must be > 0, got %g", ErrDegenerateShape, s.Width)
	}
	return nil
}

// Capacity returns the number of samples before deduplication.
func (s Shape) Capacity() int {
	return (s.ParticlesFront + s.ParticlesBack) * s.Rows
}
