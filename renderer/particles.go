package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefx/particle"
	"github.com/pthm-cable/wavefx/systems"
)

// ParticleRenderer renders displayed particles as small cubes.
type ParticleRenderer struct {
	Size float32 // cube edge length in world units
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{Size: 0.08}
}

// Draw renders all particles. Must be called between BeginMode3D and EndMode3D.
func (r *ParticleRenderer) Draw(particles []systems.LiveParticle) {
	for i := range particles {
		p := &particles[i]

		// Fade out over the particle's life
		lifeRatio := p.LifeRatio()
		c := rl.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: uint8(float32(p.Color.A) * lifeRatio)}

		size := r.Size * kindScale(p.Kind)
		rl.DrawCube(Vec3(p.Pos), size, size, size, c)
	}
}

// kindScale returns the relative size of a particle kind.
func kindScale(k particle.Kind) float32 {
	switch k {
	case particle.KindCloud:
		return 1.6
	case particle.KindSplash, particle.KindBubble:
		return 1.2
	case particle.KindSpark:
		return 0.6
	}
	return 1
}
