package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/particle"
	"github.com/pthm-cable/wavefx/wave"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Wave != wave.DefaultShape() {
		t.Errorf("default wave = %+v, want %+v", cfg.Wave, wave.DefaultShape())
	}
	if cfg.Derived.Schedule != effect.DefaultSchedule() {
		t.Errorf("default schedule = %+v, want %+v", cfg.Derived.Schedule, effect.DefaultSchedule())
	}
	if cfg.Derived.Primary != particle.KindDripWater || cfg.Derived.Secondary != particle.KindCloud {
		t.Errorf("kinds = %s/%s", cfg.Derived.Primary, cfg.Derived.Secondary)
	}
	if cfg.Derived.CloudColor != nil {
		t.Errorf("cloud color = %v, want nil", cfg.Derived.CloudColor)
	}
	if cfg.Motion.Speed != wave.DefaultSpeed {
		t.Errorf("motion speed = %f", cfg.Motion.Speed)
	}
	if len(cfg.Anchors) == 0 {
		t.Error("no anchors")
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	data := []byte(`
wave:
  rows: 4
  width: 3
particles:
  secondary: snow
  cloud_color: "#336699"
schedule:
  iterations: -1
anchors:
  - position: [1, 2, 3]
    yaw: 90
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Wave.Rows != 4 || cfg.Wave.Width != 3 {
		t.Errorf("wave overrides not applied: %+v", cfg.Wave)
	}
	if cfg.Wave.ParticlesFront != 10 {
		t.Errorf("unspecified field lost default: particles_front = %d", cfg.Wave.ParticlesFront)
	}
	if cfg.Derived.Secondary != particle.KindSnow {
		t.Errorf("secondary = %s, want snow", cfg.Derived.Secondary)
	}
	if c := cfg.Derived.CloudColor; c == nil || c.R != 0x33 || c.G != 0x66 || c.B != 0x99 {
		t.Errorf("cloud color = %v", c)
	}
	if cfg.Derived.Schedule.Iterations != -1 {
		t.Errorf("iterations = %d", cfg.Derived.Schedule.Iterations)
	}
	if len(cfg.Anchors) != 1 || cfg.Anchors[0].Name != "anchor-0" || cfg.Anchors[0].Yaw != 90 {
		t.Errorf("anchors = %+v", cfg.Anchors)
	}

	opts := cfg.WaveOptions()
	if opts.Secondary != particle.KindSnow || opts.CloudColor != cfg.Derived.CloudColor {
		t.Errorf("WaveOptions = %+v", opts)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		want error
	}{
		{"zero rows", "wave:\n  rows: 0\n", wave.ErrDegenerateShape},
		{"unknown particle", "particles:\n  primary: lava\n", particle.ErrUnknownKind},
		{"bad period", "schedule:\n  period: 0\n", effect.ErrInvalidSchedule},
		{"bad type", "schedule:\n  type: weekly\n", effect.ErrInvalidSchedule},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, tc.want) {
				t.Errorf("Load = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Wave.Height = 3.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Wave.Height != 3.5 {
		t.Errorf("height = %f, want 3.5", loaded.Wave.Height)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}
