package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TickSample holds the counters of a single tick.
type TickSample struct {
	Tick          int32
	ActiveEffects int
	Runs          int // effect runs this tick
	Rebuilds      int // cloud rebuilds this tick
	Edge          int // crest particles displayed
	Interior      int // water particles displayed
	Live          int // particles buffered for rendering
}

// Particles returns the particles displayed during the tick.
func (s TickSample) Particles() int {
	return s.Edge + s.Interior
}

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	ActiveEffects int `csv:"active_effects"`
	LivePeak      int `csv:"live_peak"`

	// Totals during window
	Runs           int `csv:"runs"`
	Rebuilds       int `csv:"rebuilds"`
	EdgeTotal      int `csv:"edge_total"`
	InteriorTotal  int `csv:"interior_total"`
	ParticlesTotal int `csv:"particles_total"`

	// Distribution of particles per tick
	ParticlesMean float64 `csv:"particles_mean"`
	ParticlesP50  float64 `csv:"particles_p50"`
	ParticlesP90  float64 `csv:"particles_p90"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active_effects", s.ActiveEffects),
		slog.Int("live_peak", s.LivePeak),
		slog.Int("runs", s.Runs),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Int("edge_total", s.EdgeTotal),
		slog.Int("interior_total", s.InteriorTotal),
		slog.Float64("particles_mean", s.ParticlesMean),
		slog.Float64("particles_p50", s.ParticlesP50),
		slog.Float64("particles_p90", s.ParticlesP90),
	)
}

// Collector aggregates tick samples into fixed windows.
type Collector struct {
	windowTicks int32
	dt          float64
	startTick   int32
	samples     []TickSample
}

// NewCollector creates a collector flushing every windowTicks ticks of dt seconds.
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 100
	}
	return &Collector{
		windowTicks: int32(windowTicks),
		dt:          dt,
		samples:     make([]TickSample, 0, windowTicks),
	}
}

// Record adds a tick sample to the current window.
func (c *Collector) Record(s TickSample) {
	if len(c.samples) == 0 {
		c.startTick = s.Tick
	}
	c.samples = append(c.samples, s)
}

// ShouldFlush reports whether the window ending at tick is complete.
func (c *Collector) ShouldFlush(tick int32) bool {
	return len(c.samples) > 0 && tick-c.startTick+1 >= c.windowTicks
}

// Pending returns the number of samples in the open window.
func (c *Collector) Pending() int {
	return len(c.samples)
}

// Flush aggregates the current window and starts a new one.
func (c *Collector) Flush() WindowStats {
	if len(c.samples) == 0 {
		return WindowStats{}
	}

	last := c.samples[len(c.samples)-1]
	ws := WindowStats{
		WindowStartTick: c.startTick,
		WindowEndTick:   last.Tick,
		SimTimeSec:      float64(last.Tick) * c.dt,
		ActiveEffects:   last.ActiveEffects,
	}

	perTick := make([]float64, len(c.samples))
	for i, s := range c.samples {
		ws.Runs += s.Runs
		ws.Rebuilds += s.Rebuilds
		ws.EdgeTotal += s.Edge
		ws.InteriorTotal += s.Interior
		if s.Live > ws.LivePeak {
			ws.LivePeak = s.Live
		}
		perTick[i] = float64(s.Particles())
	}
	ws.ParticlesTotal = ws.EdgeTotal + ws.InteriorTotal

	ws.ParticlesMean = stat.Mean(perTick, nil)
	sort.Float64s(perTick)
	ws.ParticlesP50 = stat.Quantile(0.5, stat.Empirical, perTick, nil)
	ws.ParticlesP90 = stat.Quantile(0.9, stat.Empirical, perTick, nil)

	c.samples = c.samples[:0]
	return ws
}
