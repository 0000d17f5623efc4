package systems

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/particle"
)

// LiveParticle is a displayed particle fading out over its life.
type LiveParticle struct {
	Pos     r3.Vec
	Kind    particle.Kind
	Color   color.RGBA
	Life    int32
	MaxLife int32
}

// LifeRatio returns the remaining life in [0, 1].
func (p *LiveParticle) LifeRatio() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float32(p.Life) / float32(p.MaxLife)
}

// ParticleSystem buffers displayed particles for renderers.
// It implements effect.Display.
type ParticleSystem struct {
	Particles    []LiveParticle
	maxParticles int
	life         int32
	rng          *rand.Rand
	dropped      int
}

// NewParticleSystem creates a buffer keeping each particle for life ticks.
func NewParticleSystem(maxParticles int, life int32, rng *rand.Rand) *ParticleSystem {
	if life < 1 {
		life = 1
	}
	return &ParticleSystem{
		Particles:    make([]LiveParticle, 0, maxParticles),
		maxParticles: maxParticles,
		life:         life,
		rng:          rng,
	}
}

// Display implements effect.Display. Count copies are emitted; a non-zero
// speed scatters the copies around the requested position.
func (s *ParticleSystem) Display(p effect.Particle) {
	c := p.Kind.Color()
	if p.Color != nil {
		c = *p.Color
	}
	count := p.Count
	if count < 1 {
		count = 1
	}

	for i := 0; i < count; i++ {
		if len(s.Particles) >= s.maxParticles {
			s.dropped += count - i
			return
		}
		pos := p.Pos
		if p.Speed > 0 && s.rng != nil {
			pos = r3.Add(pos, r3.Vec{
				X: (s.rng.Float64() - 0.5) * p.Speed,
				Y: (s.rng.Float64() - 0.5) * p.Speed,
				Z: (s.rng.Float64() - 0.5) * p.Speed,
			})
		}
		s.Particles = append(s.Particles, LiveParticle{
			Pos:     pos,
			Kind:    p.Kind,
			Color:   c,
			Life:    s.life,
			MaxLife: s.life,
		})
	}
}

// Update ages every particle and drops the expired ones.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// Dropped returns how many particles were refused because the buffer was full.
func (s *ParticleSystem) Dropped() int {
	return s.dropped
}

// Clear removes every particle.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}
