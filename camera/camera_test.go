package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/geom"
)

func TestNewClamps(t *testing.T) {
	cam := New(r3.Vec{}, 0, 120, 500, 4, 80)

	if cam.Pitch != MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", MaxPitch, cam.Pitch)
	}
	if cam.Distance != 80 {
		t.Errorf("expected distance clamped to 80, got %f", cam.Distance)
	}
}

func TestPosition(t *testing.T) {
	testCases := []struct {
		name       string
		yaw, pitch float64
		want       r3.Vec
	}{
		{"behind +Z", 0, 0, r3.Vec{Z: 10}},
		{"side +X", 90, 0, r3.Vec{X: 10}},
		{"above", 0, 89, r3.Vec{Y: 10 * math.Sin(89*geom.DegToRad), Z: 10 * math.Cos(89*geom.DegToRad)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := New(r3.Vec{Y: 1}, tc.yaw, tc.pitch, 10, 1, 100)
			want := r3.Add(tc.want, r3.Vec{Y: 1})
			if got := cam.Position(); !geom.ApproxEqual(got, want, 1e-9) {
				t.Errorf("Position() = %v, want %v", got, want)
			}
			// Eye is always Distance away from the target.
			if d := r3.Norm(r3.Sub(cam.Position(), cam.Target)); math.Abs(d-10) > 1e-9 {
				t.Errorf("distance = %f, want 10", d)
			}
		})
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(r3.Vec{}, 0, 30, 10, 1, 100)
	cam.Orbit(400, 100)

	if cam.Pitch != MaxPitch {
		t.Errorf("pitch = %f, want %f", cam.Pitch, MaxPitch)
	}
	if math.Abs(cam.Yaw-40) > 1e-9 {
		t.Errorf("yaw = %f, want 40", cam.Yaw)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(r3.Vec{}, 0, 30, 10, 4, 20)

	cam.ZoomBy(10)
	if cam.Distance != 4 {
		t.Errorf("expected distance clamped to 4, got %f", cam.Distance)
	}
	cam.ZoomBy(0.01)
	if cam.Distance != 20 {
		t.Errorf("expected distance clamped to 20, got %f", cam.Distance)
	}
	cam.ZoomBy(0) // ignored
	if cam.Distance != 20 {
		t.Errorf("zero factor changed distance to %f", cam.Distance)
	}
}

func TestPanMovesInGroundPlane(t *testing.T) {
	cam := New(r3.Vec{}, 0, 45, 10, 1, 100)

	// Camera sits on +Z looking towards -Z.
	cam.Pan(0, 2)
	if !geom.ApproxEqual(cam.Target, r3.Vec{Z: -2}, 1e-9) {
		t.Errorf("forward pan moved target to %v", cam.Target)
	}
	cam.Pan(3, 0)
	if cam.Target.Y != 0 {
		t.Errorf("pan changed target height: %v", cam.Target)
	}
	if math.Abs(r3.Norm(r3.Sub(cam.Target, r3.Vec{Z: -2}))-3) > 1e-9 {
		t.Errorf("side pan moved %v", cam.Target)
	}
}

func TestReset(t *testing.T) {
	cam := New(r3.Vec{X: 1}, 10, 20, 30, 1, 100)
	cam.Orbit(50, 10)
	cam.ZoomBy(2)
	cam.Follow(r3.Vec{X: 9})

	cam.Reset()

	if cam.Target != (r3.Vec{X: 1}) || cam.Yaw != 10 || cam.Pitch != 20 || cam.Distance != 30 {
		t.Errorf("reset camera = %+v", cam)
	}
}
