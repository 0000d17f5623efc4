package wave

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/geom"
	"github.com/pthm-cable/wavefx/particle"
)

const tol = 1e-9

func TestBuildProfileNormalSign(t *testing.T) {
	testCases := []struct {
		name       string
		start, end r3.Vec
	}{
		{"up right", r3.Vec{}, r3.Vec{X: 1, Y: 1}},
		{"up left", r3.Vec{}, r3.Vec{X: -1, Y: 1}},
		{"down right", r3.Vec{}, r3.Vec{X: 1, Y: -1}},
		{"down left", r3.Vec{}, r3.Vec{X: -1, Y: -1}},
		{"flat forward", r3.Vec{X: -1}, r3.Vec{X: 2}},
		{"flat backward", r3.Vec{X: 2}, r3.Vec{X: -1}},
		{"vertical", r3.Vec{Y: -3}, r3.Vec{Y: 3}},
		{"front of stock wave", r3.Vec{X: -1.5}, r3.Vec{X: -0.75, Y: 2}},
		{"back of stock wave", r3.Vec{X: 3}, r3.Vec{X: -0.75, Y: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := BuildProfile(tc.start, tc.end)

			if p.Normal.X < 0 {
				t.Errorf("normal X = %f, want >= 0", p.Normal.X)
			}
			if p.Normal.Z != 0 {
				t.Errorf("normal Z = %f, want 0", p.Normal.Z)
			}
			if math.Abs(r3.Norm(p.Normal)-1) > tol {
				t.Errorf("|normal| = %f, want 1", r3.Norm(p.Normal))
			}
			if math.Abs(r3.Norm(p.Tangent)-1) > tol {
				t.Errorf("|tangent| = %f, want 1", r3.Norm(p.Tangent))
			}
			if d := r3.Dot(p.Normal, p.Tangent); math.Abs(d) > tol {
				t.Errorf("normal . tangent = %f, want 0", d)
			}

			wantHalf := r3.Norm(r3.Sub(tc.end, tc.start)) / 2
			if math.Abs(p.HalfLen-wantHalf) > tol {
				t.Errorf("HalfLen = %f, want %f", p.HalfLen, wantHalf)
			}
			wantMid := r3.Scale(0.5, r3.Add(tc.start, tc.end))
			if !geom.ApproxEqual(p.Mid, wantMid, tol) {
				t.Errorf("Mid = %v, want %v", p.Mid, wantMid)
			}
		})
	}
}

func TestProfileHeight(t *testing.T) {
	p := BuildProfile(r3.Vec{X: -1.5}, r3.Vec{X: -0.75, Y: 2})

	for _, h := range []float64{1, -0.5, 3.25} {
		if got := p.Height(0, h); math.Abs(got-h) > tol {
			t.Errorf("Height(0, %f) = %f, want %f", h, got, h)
		}
		if got := p.Height(p.HalfLen, h); math.Abs(got) > tol {
			t.Errorf("Height(+L, %f) = %f, want 0", h, got)
		}
		if got := p.Height(-p.HalfLen, h); math.Abs(got) > tol {
			t.Errorf("Height(-L, %f) = %f, want 0", h, got)
		}
	}
}

func TestProfileEndpoints(t *testing.T) {
	start := r3.Vec{X: 3}
	apex := r3.Vec{X: -0.75, Y: 2}
	p := BuildProfile(start, apex)

	// The curve passes through both control points whatever the curvature.
	for _, h := range []float64{0, 0.5, -2} {
		if got := p.At(-p.HalfLen, h); !geom.ApproxEqual(got, start, tol) {
			t.Errorf("At(-L, %f) = %v, want %v", h, got, start)
		}
		if got := p.At(p.HalfLen, h); !geom.ApproxEqual(got, apex, tol) {
			t.Errorf("At(+L, %f) = %v, want %v", h, got, apex)
		}
	}
}

func TestFrontEdgeCountIndependentOfRows(t *testing.T) {
	for _, rows := range []int{1, 2, 5, 13} {
		s := DefaultShape()
		s.ParticlesFront = 6
		s.ParticlesBack = 3 // back never reaches index ParticlesFront-1
		s.Rows = rows

		c := Build(s, 0)

		if got, want := c.Edge.Len(), 2*rows; got != want {
			t.Errorf("rows=%d: %d edge points, want %d", rows, got, want)
		}
		if max := (s.ParticlesFront-2)*rows + s.ParticlesBack*rows; c.Interior.Len() > max {
			t.Errorf("rows=%d: %d interior points, want at most %d", rows, c.Interior.Len(), max)
		}
	}
}

func TestBackEdgeUsesFrontCount(t *testing.T) {
	s := DefaultShape()
	s.ParticlesFront = 3
	s.ParticlesBack = 8
	s.Rows = 4

	c := Build(s, 0)

	// Two front rows plus back row index 2.
	if got, want := c.Edge.Len(), 3*s.Rows; got != want {
		t.Fatalf("%d edge points, want %d", got, want)
	}

	back := backProfile(s)
	rot := facing(0)
	v := back.At((2.0/8-0.5)*2*back.HalfLen, s.HeightBack)
	for j := 0; j < s.Rows; j++ {
		z := (float64(j)/float64(s.Rows) - 0.5) * s.Width
		p := rot.Rotate(geom.WithZ(v, v.Z+z))
		if !c.Edge.Contains(p) {
			t.Errorf("back row point %v (i=2, j=%d) not classified as edge", p, j)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	s := DefaultShape()
	a := Build(s, 37.5)
	b := Build(s, 37.5)

	for _, class := range []Class{ClassEdge, ClassInterior} {
		pa, pb := a.Points(class), b.Points(class)
		if len(pa) != len(pb) {
			t.Fatalf("%s: %d vs %d points", class, len(pa), len(pb))
		}
		for i := range pa {
			if pa[i] != pb[i] {
				t.Errorf("%s[%d]: %v vs %v", class, i, pa[i], pb[i])
			}
		}
	}
}

func TestSampleClearsPreviousCloud(t *testing.T) {
	s := DefaultShape()
	c := Build(s, 0)
	before := c.Len()

	Sample(c, s, 0)
	if c.Len() != before {
		t.Errorf("resampling same shape: %d points, want %d", c.Len(), before)
	}

	small := s
	small.ParticlesFront, small.ParticlesBack, small.Rows = 2, 2, 1
	Sample(c, small, 0)
	if c.Len() > small.Capacity() {
		t.Errorf("resampling smaller shape kept stale points: %d > %d", c.Len(), small.Capacity())
	}
}

func TestFlatWaveClosedForm(t *testing.T) {
	s := Shape{
		ParticlesFront: 2,
		ParticlesBack:  2,
		Rows:           2,
		LengthFront:    1,
		LengthBack:     1,
		Width:          2,
	}

	c := Build(s, 0)

	// Local frame before turning: front samples at x = -1 and -0.75, back
	// samples at x = 1 (interior) and 0.25 (edge), rows at z = -1 and 0.
	// Facing yaw 0 turns (x, y, z) into (z, y, -x).
	wantEdge := []r3.Vec{
		{X: -1, Z: 1}, {X: 0, Z: 1},
		{X: -1, Z: 0.75}, {X: 0, Z: 0.75},
		{X: -1, Z: -0.25}, {X: 0, Z: -0.25},
	}
	wantInterior := []r3.Vec{
		{X: -1, Z: -1}, {X: 0, Z: -1},
	}

	assertPoints(t, "edge", c.Edge.Points(), wantEdge)
	assertPoints(t, "interior", c.Interior.Points(), wantInterior)

	for _, p := range c.Edge.Points() {
		if math.Abs(p.Y) > tol {
			t.Errorf("flat wave point %v has height", p)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultShape().Validate(); err != nil {
		t.Fatalf("default shape invalid: %v", err)
	}

	testCases := []struct {
		name   string
		modify func(*Shape)
	}{
		{"zero front count", func(s *Shape) { s.ParticlesFront = 0 }},
		{"zero back count", func(s *Shape) { s.ParticlesBack = 0 }},
		{"zero rows", func(s *Shape) { s.Rows = 0 }},
		{"zero front length", func(s *Shape) { s.LengthFront = 0 }},
		{"negative back length", func(s *Shape) { s.LengthBack = -1 }},
		{"zero width", func(s *Shape) { s.Width = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultShape()
			tc.modify(&s)
			if err := s.Validate(); !errors.Is(err, ErrDegenerateShape) {
				t.Errorf("Validate() = %v, want ErrDegenerateShape", err)
			}
		})
	}
}

// fakeHost records what an effect does during runs.
type fakeHost struct {
	loc       effect.Location
	missing   bool
	moves     int
	particles []effect.Particle
	cancelled bool
}

func (h *fakeHost) Anchor() (effect.Location, bool) {
	if h.missing {
		return effect.Location{}, false
	}
	return h.loc, true
}

func (h *fakeHost) Move(d r3.Vec) {
	h.moves++
	h.loc = h.loc.Add(d)
}

func (h *fakeHost) Display(p effect.Particle) { h.particles = append(h.particles, p) }

func (h *fakeHost) Cancel() { h.cancelled = true }

func TestEffectFirstRunBuildsCache(t *testing.T) {
	cloud := &color.RGBA{R: 10, G: 20, B: 30, A: 255}
	opts := DefaultOptions()
	opts.CloudColor = cloud
	opts.ParticleCount = 3

	e := New(DefaultShape(), opts)
	if e.State() != StateUninitialized {
		t.Fatalf("new effect state = %s", e.State())
	}

	h := &fakeHost{loc: effect.Location{Pos: r3.Vec{X: 10, Y: 64, Z: -4}}}
	e.Run(h)

	if e.State() != StateActive {
		t.Fatalf("state after first run = %s, want active", e.State())
	}
	if e.Rebuilds() != 1 {
		t.Errorf("rebuilds = %d, want 1", e.Rebuilds())
	}
	if e.Cloud().Edge.Len() == 0 || e.Cloud().Interior.Len() == 0 {
		t.Fatalf("empty cache: %d edge, %d interior", e.Cloud().Edge.Len(), e.Cloud().Interior.Len())
	}

	// Yaw 0 faces +Z.
	if want := (r3.Vec{Z: DefaultSpeed}); !geom.ApproxEqual(e.Velocity(), want, tol) {
		t.Errorf("velocity = %v, want %v", e.Velocity(), want)
	}
	if h.moves != 1 {
		t.Errorf("anchor moved %d times, want 1", h.moves)
	}
	if len(h.particles) != e.Cloud().Len() {
		t.Fatalf("%d particles displayed, want %d", len(h.particles), e.Cloud().Len())
	}

	origin := r3.Vec{X: 10, Y: 64, Z: -4 + DefaultSpeed}
	edges := e.Cloud().Edge.Points()
	for i, p := range h.particles {
		if i < len(edges) {
			if p.Kind != particle.KindCloud || p.Color != cloud || p.Count != 1 || p.Speed != 0 {
				t.Fatalf("edge particle %d = %+v", i, p)
			}
			if want := r3.Add(origin, edges[i]); !geom.ApproxEqual(p.Pos, want, tol) {
				t.Errorf("edge particle %d at %v, want %v", i, p.Pos, want)
			}
			continue
		}
		if p.Kind != particle.KindDripWater || p.Color != nil || p.Count != 3 {
			t.Fatalf("interior particle %d = %+v", i, p)
		}
	}
}

func TestEffectReplaysWithoutRebuild(t *testing.T) {
	e := New(DefaultShape(), DefaultOptions())
	h := &fakeHost{loc: effect.Location{Yaw: 90}}

	for i := 0; i < 4; i++ {
		e.Run(h)
	}

	if e.Rebuilds() != 1 {
		t.Errorf("rebuilds = %d, want 1", e.Rebuilds())
	}
	// Yaw 90 faces -X.
	want := r3.Vec{X: -4 * DefaultSpeed}
	if !geom.ApproxEqual(h.loc.Pos, want, tol) {
		t.Errorf("anchor at %v after 4 runs, want %v", h.loc.Pos, want)
	}
}

func TestEffectResetRebuildsKeepingVelocity(t *testing.T) {
	e := New(DefaultShape(), DefaultOptions())
	h := &fakeHost{loc: effect.Location{Yaw: 45}}
	e.Run(h)
	v := e.Velocity()

	e.Reset()
	if e.State() != StateUninitialized {
		t.Fatalf("state after reset = %s", e.State())
	}
	if e.Velocity() != v {
		t.Errorf("reset cleared velocity: %v, want %v", e.Velocity(), v)
	}

	h.particles = nil
	e.Run(h)
	if e.State() != StateActive || e.Rebuilds() != 2 {
		t.Errorf("after reset+run: state %s, rebuilds %d", e.State(), e.Rebuilds())
	}
	if len(h.particles) == 0 {
		t.Error("no particles after reset+run")
	}
}

func TestEffectCancelsWithoutAnchor(t *testing.T) {
	e := New(DefaultShape(), DefaultOptions())
	h := &fakeHost{}
	e.Run(h)
	edges, interior := e.Cloud().Edge.Len(), e.Cloud().Interior.Len()

	h.missing = true
	h.particles = nil
	e.Run(h)

	if e.State() != StateCancelled {
		t.Errorf("state = %s, want cancelled", e.State())
	}
	if !h.cancelled {
		t.Error("host not asked to cancel")
	}
	if len(h.particles) != 0 {
		t.Errorf("%d particles displayed without anchor", len(h.particles))
	}
	if e.Cloud().Edge.Len() != edges || e.Cloud().Interior.Len() != interior {
		t.Error("cache changed on cancel")
	}

	// Cancelled is terminal until reset.
	h.missing = false
	h.cancelled = false
	e.Run(h)
	if !h.cancelled || len(h.particles) != 0 {
		t.Error("cancelled effect ran again")
	}
}

func TestEffectCancelsBeforeFirstBuild(t *testing.T) {
	e := New(DefaultShape(), DefaultOptions())
	h := &fakeHost{missing: true}
	e.Run(h)

	if e.State() != StateCancelled || e.Rebuilds() != 0 || e.Cloud().Len() != 0 {
		t.Errorf("state %s, rebuilds %d, cache %d", e.State(), e.Rebuilds(), e.Cloud().Len())
	}
}

func TestEffectInvalidateAppliesNewShape(t *testing.T) {
	e := New(DefaultShape(), DefaultOptions())
	h := &fakeHost{}
	e.Run(h)
	before := e.Cloud().Len()

	s := e.Shape()
	s.Rows = 2
	e.SetShape(s)
	if e.Cloud().Len() != before {
		t.Fatal("SetShape rebuilt the cache")
	}

	e.Invalidate(0)
	if e.Cloud().Len() >= before {
		t.Errorf("cache %d points after shrinking rows, had %d", e.Cloud().Len(), before)
	}
}

func TestEffectUnderManager(t *testing.T) {
	e := New(DefaultShape(), DefaultOptions())
	var displayed int
	m := effect.NewManager(effect.DisplayFunc(func(effect.Particle) { displayed++ }), nil)

	sched := effect.DefaultSchedule()
	sched.Repeats = 1
	anchor := effect.NewStaticAnchor(effect.Location{})
	h, err := m.Start("wave", e, sched, anchor)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 2*sched.Period*sched.Iterations; i++ {
		m.Tick()
	}

	if h.Status() != effect.StatusDone {
		t.Errorf("status = %s, want done", h.Status())
	}
	if h.TotalRuns() != 2*sched.Iterations {
		t.Errorf("runs = %d, want %d", h.TotalRuns(), 2*sched.Iterations)
	}
	if e.Rebuilds() != 2 {
		t.Errorf("rebuilds = %d, want one per sequence", e.Rebuilds())
	}
	if displayed != h.TotalRuns()*e.Cloud().Len() {
		t.Errorf("displayed %d particles, want %d", displayed, h.TotalRuns()*e.Cloud().Len())
	}
}

func assertPoints(t *testing.T, label string, got, want []r3.Vec) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: %d points %v, want %d", label, len(got), got, len(want))
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if geom.ApproxEqual(g, w, tol) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s: missing %v in %v", label, w, got)
		}
	}
}
