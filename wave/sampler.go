package wave

import (
	"github.com/pthm-cable/wavefx/geom"
)

// Build samples a fresh cloud for s facing yaw degrees.
func Build(s Shape, yaw float64) *Cloud {
	c := NewCloud(s)
	Sample(c, s, yaw)
	return c
}

// Sample clears c and fills it with the front then the back cross-section of s,
// turned to face yaw degrees.
func Sample(c *Cloud, s Shape, yaw float64) {
	c.Clear()
	rot := facing(yaw)

	front := frontProfile(s)
	last := s.ParticlesFront - 1
	sampleProfile(c, front, s.ParticlesFront, s.DepthFront, s.Rows, s.Width, rot, func(i int) Class {
		if i == 0 || i == last {
			return ClassEdge
		}
		return ClassInterior
	})

	// The back slope's edge row is keyed on the front count, not the back count.
	back := backProfile(s)
	sampleProfile(c, back, s.ParticlesBack, s.HeightBack, s.Rows, s.Width, rot, func(i int) Class {
		if i == last {
			return ClassEdge
		}
		return ClassInterior
	})
}

// sampleProfile sweeps prof across the width, adding count*rows rotated offsets to c.
func sampleProfile(c *Cloud, prof Profile, count int, curvature float64, rows int, width float64, rot geom.Yaw, classify func(i int) Class) {
	for i := 0; i < count; i++ {
		ratio := float64(i) / float64(count)
		x := (ratio - 0.5) * 2 * prof.HalfLen
		v := prof.At(x, curvature)
		class := classify(i)

		for j := 0; j < rows; j++ {
			z := (float64(j)/float64(rows) - 0.5) * width
			c.Add(rot.Rotate(geom.WithZ(v, v.Z+z)), class)
		}
	}
}
