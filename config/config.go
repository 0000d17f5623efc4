// Package config provides configuration loading and access for the wave renderer.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/particle"
	"github.com/pthm-cable/wavefx/wave"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Wave      wave.Shape      `yaml:"wave"`
	Particles ParticlesConfig `yaml:"particles"`
	Motion    MotionConfig    `yaml:"motion"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Anchors   []AnchorConfig  `yaml:"anchors"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	TickRate  int `yaml:"tick_rate"` // game ticks per second
}

// ParticlesConfig selects what the wave is drawn with.
type ParticlesConfig struct {
	Primary    string  `yaml:"primary"`     // interior (water) kind
	Secondary  string  `yaml:"secondary"`   // edge (cloud) kind
	CloudColor string  `yaml:"cloud_color"` // "#rrggbb", empty = kind default
	Speed      float64 `yaml:"speed"`       // extra spread for interior particles
	Count      int     `yaml:"count"`       // particles per interior request
	Life       int     `yaml:"life"`        // ticks a displayed particle stays visible
}

// MotionConfig holds wave travel parameters.
type MotionConfig struct {
	Speed float64 `yaml:"speed"` // distance per run along the initial facing (0 = stationary)
}

// ScheduleConfig controls how often the wave runs.
type ScheduleConfig struct {
	Type       string `yaml:"type"` // instant, delayed, repeating
	Delay      int    `yaml:"delay"`
	Period     int    `yaml:"period"`
	Iterations int    `yaml:"iterations"` // -1 = forever
	Repeats    int    `yaml:"repeats"`    // -1 = forever
}

// AnchorConfig places one wave in the world.
type AnchorConfig struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`       // degrees, 0 faces +Z
	Pitch    float64    `yaml:"pitch"`     // degrees, positive looks down
	TurnRate float64    `yaml:"turn_rate"` // degrees per tick
	Lifetime int        `yaml:"lifetime"`  // ticks until the anchor is removed (0 = never)
}

// CameraConfig holds the orbit camera defaults.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	Yaw         float64 `yaml:"yaw"`   // degrees
	Pitch       float64 `yaml:"pitch"` // degrees above the horizon
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Primary    particle.Kind
	Secondary  particle.Kind
	CloudColor *color.RGBA
	Schedule   effect.Schedule
	TickDT     float32 // seconds per game tick
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived resolves names and fills defaults.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.Primary, err = particle.ParseKind(c.Particles.Primary); err != nil {
		return fmt.Errorf("particles.primary: %w", err)
	}
	if c.Derived.Secondary, err = particle.ParseKind(c.Particles.Secondary); err != nil {
		return fmt.Errorf("particles.secondary: %w", err)
	}
	if c.Derived.CloudColor, err = particle.ParseColor(c.Particles.CloudColor); err != nil {
		return fmt.Errorf("particles.cloud_color: %w", err)
	}

	typ, err := effect.ParseType(c.Schedule.Type)
	if err != nil {
		return fmt.Errorf("schedule.type: %w", err)
	}
	c.Derived.Schedule = effect.Schedule{
		Type:       typ,
		Delay:      c.Schedule.Delay,
		Period:     c.Schedule.Period,
		Iterations: c.Schedule.Iterations,
		Repeats:    c.Schedule.Repeats,
	}

	if c.Screen.TickRate <= 0 {
		c.Screen.TickRate = 20
	}
	c.Derived.TickDT = 1 / float32(c.Screen.TickRate)

	if c.Particles.Count <= 0 {
		c.Particles.Count = 1
	}

	// Synthesize a single anchor at the origin if none specified
	if len(c.Anchors) == 0 {
		c.Anchors = []AnchorConfig{{Name: "origin"}}
	}
	for i := range c.Anchors {
		if c.Anchors[i].Name == "" {
			c.Anchors[i].Name = fmt.Sprintf("anchor-%d", i)
		}
	}
	return nil
}

// Validate checks the wave shape and schedule.
func (c *Config) Validate() error {
	if err := c.Wave.Validate(); err != nil {
		return fmt.Errorf("wave: %w", err)
	}
	if err := c.Derived.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	return nil
}

// WaveOptions returns the display options for a wave effect.
func (c *Config) WaveOptions() wave.Options {
	return wave.Options{
		Primary:       c.Derived.Primary,
		Secondary:     c.Derived.Secondary,
		CloudColor:    c.Derived.CloudColor,
		Speed:         c.Motion.Speed,
		ParticleSpeed: c.Particles.Speed,
		ParticleCount: c.Particles.Count,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
