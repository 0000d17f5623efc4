// Package sim runs the wave world without any graphics: anchors, scheduled
// wave effects, the particle buffer and telemetry.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wavefx/config"
	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/systems"
	"github.com/pthm-cable/wavefx/telemetry"
	"github.com/pthm-cable/wavefx/wave"
)

// MaxParticles caps the particle buffer.
const MaxParticles = 200_000

// Options configures a simulation.
type Options struct {
	Seed          int64
	Config        *config.Config // nil = config.Cfg()
	Logger        *slog.Logger   // nil = slog.Default()
	LogStats      bool
	OutputDir     string
	DumpPoints    bool // write points.csv after each cloud rebuild
	StatsCallback func(telemetry.WindowStats)
}

// Wave is one wave effect bound to an anchor entity.
type Wave struct {
	Name   string
	Entity ecs.Entity
	Effect *wave.Effect
	Handle *effect.Handle

	dumped int // rebuild count last written to points.csv
}

// Sim holds the complete world state.
type Sim struct {
	cfg    *config.Config
	logger *slog.Logger
	rng    *rand.Rand

	world     *ecs.World
	anchors   *systems.AnchorSystem
	particles *systems.ParticleSystem
	recorder  *telemetry.Recorder
	effects   *effect.Manager
	waves     []*Wave
	registry  *systems.SystemRegistry

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	dumpPoints    bool

	tick     int32
	last     telemetry.TickSample
	rebuilds int // total rebuilds seen at the end of the previous tick
}

// New creates a simulation, spawns the configured anchors and starts one
// wave per anchor.
func New(opts Options) (*Sim, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	particles := systems.NewParticleSystem(MaxParticles, int32(cfg.Particles.Life), rng)
	recorder := telemetry.NewRecorder(particles)

	s := &Sim{
		cfg:           cfg,
		logger:        logger,
		rng:           rng,
		world:         world,
		anchors:       systems.NewAnchorSystem(world),
		particles:     particles,
		recorder:      recorder,
		effects:       effect.NewManager(recorder, logger),
		registry:      systems.NewSystemRegistry(),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, float64(cfg.Derived.TickDT)),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		dumpPoints:    opts.DumpPoints,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, err
		}
		s.outputManager = om
	}

	if err := s.spawnAnchors(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Step runs a single tick.
func (s *Sim) Step() {
	s.perfCollector.StartTick()
	s.tick++

	s.perfCollector.StartPhase(telemetry.PhaseAnchors)
	if removed := s.anchors.Update(); removed > 0 {
		s.logger.Debug("anchors expired", "count", removed, "tick", s.tick)
	}

	s.perfCollector.StartPhase(telemetry.PhaseEffects)
	s.recorder.Reset()
	s.effects.Tick()

	s.perfCollector.StartPhase(telemetry.PhaseParticles)
	s.particles.Update()

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.recordTick()
	s.flushTelemetry()

	s.perfCollector.EndTick()
}

// Restart cancels every wave and starts a fresh set on fresh anchors.
func (s *Sim) Restart() error {
	s.effects.CancelAll()
	s.effects.Tick() // drop the cancelled handles
	for _, w := range s.waves {
		s.anchors.Remove(w.Entity)
	}
	s.waves = s.waves[:0]
	s.rebuilds = 0
	s.particles.Clear()
	return s.spawnAnchors()
}

// Close flushes pending telemetry and closes output files.
func (s *Sim) Close() error {
	if s.collector.Pending() > 0 {
		s.emitWindow()
	}
	return s.outputManager.Close()
}

// Tick returns the current simulation tick.
func (s *Sim) Tick() int32 { return s.tick }

// Done reports whether every wave has finished.
func (s *Sim) Done() bool { return s.effects.Active() == 0 }

// Config returns the configuration the simulation was built from.
func (s *Sim) Config() *config.Config { return s.cfg }

// Particles returns the particles buffered for rendering.
func (s *Sim) Particles() []systems.LiveParticle { return s.particles.Particles }

// Dropped returns how many particles were refused because the buffer was full.
func (s *Sim) Dropped() int { return s.particles.Dropped() }

// Waves returns the waves started so far, including finished ones.
func (s *Sim) Waves() []*Wave { return s.waves }

// Anchors returns the anchor system.
func (s *Sim) Anchors() *systems.AnchorSystem { return s.anchors }

// Effects returns the effect manager.
func (s *Sim) Effects() *effect.Manager { return s.effects }

// Registry returns the system registry.
func (s *Sim) Registry() *systems.SystemRegistry { return s.registry }

// LastSample returns the counters of the last tick.
func (s *Sim) LastSample() telemetry.TickSample { return s.last }

// PerfStats returns timing statistics over the perf window.
func (s *Sim) PerfStats() telemetry.PerfStats { return s.perfCollector.Stats() }

// RecordFrame records frame timing for graphics mode.
func (s *Sim) RecordFrame() { s.perfCollector.RecordFrame() }
