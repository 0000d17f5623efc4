package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/systems"
	"github.com/pthm-cable/wavefx/wave"
)

// spawnAnchors creates the configured anchors, one wave each.
func (s *Sim) spawnAnchors() error {
	for _, ac := range s.cfg.Anchors {
		e := s.anchors.Spawn(systems.AnchorSpec{
			Name:     ac.Name,
			Pos:      r3.Vec{X: ac.Position[0], Y: ac.Position[1], Z: ac.Position[2]},
			Yaw:      ac.Yaw,
			Pitch:    ac.Pitch,
			TurnRate: ac.TurnRate,
			Lifetime: int32(ac.Lifetime),
		})
		if _, err := s.startWave(ac.Name, e); err != nil {
			return err
		}
	}
	return nil
}

// startWave schedules a wave effect on anchor entity e.
func (s *Sim) startWave(name string, e ecs.Entity) (*Wave, error) {
	w := &Wave{
		Name:   name,
		Entity: e,
		Effect: wave.New(s.cfg.Wave, s.cfg.WaveOptions()),
	}

	h, err := s.effects.Start(name, w.Effect, s.cfg.Derived.Schedule, s.anchors.Anchor(e))
	if err != nil {
		return nil, err
	}
	h.OnDone(func(h *effect.Handle) {
		s.logger.Info("wave finished",
			"name", h.Name(),
			"status", h.Status().String(),
			"runs", h.TotalRuns(),
			"rebuilds", w.Effect.Rebuilds(),
			"tick", s.tick,
		)
	})
	w.Handle = h
	s.waves = append(s.waves, w)
	return w, nil
}
