package sim

import (
	"github.com/pthm-cable/wavefx/telemetry"
)

// recordTick stores the counters of the tick that just ran.
func (s *Sim) recordTick() {
	edgeKind := s.cfg.Derived.Secondary

	rebuilds := 0
	for _, w := range s.waves {
		rebuilds += w.Effect.Rebuilds()
		if s.dumpPoints && w.Effect.Rebuilds() != w.dumped {
			s.writePoints(w)
		}
	}

	edge := s.recorder.Count(edgeKind)
	s.last = telemetry.TickSample{
		Tick:          s.tick,
		ActiveEffects: s.effects.Active(),
		Runs:          s.effects.LastRuns(),
		Rebuilds:      rebuilds - s.rebuilds,
		Edge:          edge,
		Interior:      s.recorder.Total() - edge,
		Live:          len(s.particles.Particles),
	}
	s.rebuilds = rebuilds
	s.collector.Record(s.last)
}

// writePoints writes the current cloud of w to points.csv.
func (s *Sim) writePoints(w *Wave) {
	w.dumped = w.Effect.Rebuilds()
	if err := s.outputManager.WritePoints(w.Name, w.Effect.Cloud()); err != nil {
		s.logger.Error("failed to write points", "wave", w.Name, "error", err)
	}
}

// flushTelemetry emits the stats window once it is complete.
func (s *Sim) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}
	s.emitWindow()
}

func (s *Sim) emitWindow() {
	stats := s.collector.Flush()
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		s.logger.Info("stats", "window", stats)
		s.logger.Info("perf", "window", perfStats)
	}

	if err := s.outputManager.WriteWindow(stats); err != nil {
		s.logger.Error("failed to write telemetry", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		s.logger.Error("failed to write perf", "error", err)
	}
}
