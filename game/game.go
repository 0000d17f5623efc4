// Package game wires the wave simulation to a raylib window.
package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/camera"
	"github.com/pthm-cable/wavefx/config"
	"github.com/pthm-cable/wavefx/renderer"
	"github.com/pthm-cable/wavefx/sim"
	"github.com/pthm-cable/wavefx/telemetry"
	"github.com/pthm-cable/wavefx/ui"
)

// Options configures a game.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	DumpPoints     bool
	Headless       bool
	StepsPerUpdate int            // ticks per headless update (0 = 1)
	Config         *config.Config // nil = config.Cfg()
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the simulation and its presentation state.
type Game struct {
	sim *sim.Sim
	cfg *config.Config

	headless       bool
	paused         bool
	stepsPerUpdate int
	accum          float32 // seconds of frame time not yet simulated

	// Rendering (nil in headless mode)
	camera           *camera.Camera
	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	perfPanel        *ui.PerfPanel
	effectsPanel     *ui.EffectsPanel
	showPanels       bool
	showCloud        bool
}

// NewGameWithOptions creates a game. It panics if the world cannot be built.
func NewGameWithOptions(opts Options) *Game {
	g, err := New(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		panic(err)
	}
	return g
}

// New creates a game.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	s, err := sim.New(sim.Options{
		Seed:          opts.Seed,
		Config:        cfg,
		LogStats:      opts.LogStats,
		OutputDir:     opts.OutputDir,
		DumpPoints:    opts.DumpPoints,
		StatsCallback: opts.StatsCallback,
	})
	if err != nil {
		return nil, err
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		sim:            s,
		cfg:            cfg,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}

	if !opts.Headless {
		g.camera = camera.New(r3.Vec{},
			cfg.Camera.Yaw, cfg.Camera.Pitch, cfg.Camera.Distance,
			cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
		g.particleRenderer = renderer.NewParticleRenderer()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-260, 10, 250)
		g.effectsPanel = ui.NewEffectsPanel(int32(cfg.Screen.Width)-260, 140, 250)
		g.showPanels = true
	}

	return g, nil
}

// Update handles input and advances the simulation by the frame time.
func (g *Game) Update(frameTime float32) {
	g.handleInput()

	if g.paused {
		return
	}

	dt := g.cfg.Derived.TickDT
	g.accum += frameTime * float32(g.stepsPerUpdate)
	// Avoid a spiral after a long stall
	if maxAccum := dt * 10 * float32(g.stepsPerUpdate); g.accum > maxAccum {
		g.accum = maxAccum
	}
	for g.accum >= dt {
		g.sim.Step()
		g.accum -= dt
	}
}

// UpdateHeadless runs StepsPerUpdate ticks without input or timing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.sim.Step()
	}
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Sim { return g.sim }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.sim.Tick() }

// Done reports whether every wave has finished.
func (g *Game) Done() bool { return g.sim.Done() }

// Unload flushes telemetry and closes output files.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
