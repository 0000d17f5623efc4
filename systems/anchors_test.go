package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlange-42/ark/ecs"
)

func TestAnchorLifetime(t *testing.T) {
	world := ecs.NewWorld()
	sys := NewAnchorSystem(world)

	short := sys.Spawn(AnchorSpec{Name: "short", Lifetime: 3})
	forever := sys.Spawn(AnchorSpec{Name: "forever"})

	for i := 0; i < 2; i++ {
		if removed := sys.Update(); removed != 0 {
			t.Fatalf("tick %d: removed %d anchors early", i, removed)
		}
	}
	if removed := sys.Update(); removed != 1 {
		t.Fatalf("removed %d anchors on expiry tick, want 1", removed)
	}

	if sys.Alive(short) {
		t.Error("expired anchor still alive")
	}
	if !sys.Alive(forever) {
		t.Error("anchor without lifetime removed")
	}
	if sys.Count() != 1 {
		t.Errorf("Count = %d, want 1", sys.Count())
	}
	if _, ok := sys.Location(short); ok {
		t.Error("expired anchor still has a location")
	}
	if sys.Name(forever) != "forever" {
		t.Errorf("Name = %q", sys.Name(forever))
	}
}

func TestAnchorTurns(t *testing.T) {
	world := ecs.NewWorld()
	sys := NewAnchorSystem(world)
	e := sys.Spawn(AnchorSpec{Yaw: 170, TurnRate: 15})

	sys.Update()

	loc, ok := sys.Location(e)
	if !ok {
		t.Fatal("anchor missing")
	}
	if loc.Yaw != -175 {
		t.Errorf("yaw = %f, want -175 after wrapping", loc.Yaw)
	}
}

func TestEntityAnchorTranslate(t *testing.T) {
	world := ecs.NewWorld()
	sys := NewAnchorSystem(world)
	e := sys.Spawn(AnchorSpec{Pos: r3.Vec{X: 1, Y: 2, Z: 3}, Yaw: 45, Pitch: 10})
	anchor := sys.Anchor(e)

	anchor.Translate(r3.Vec{Z: 0.5})
	loc, ok := anchor.Location()
	if !ok {
		t.Fatal("anchor unavailable")
	}
	if loc.Pos != (r3.Vec{X: 1, Y: 2, Z: 3.5}) || loc.Yaw != 45 || loc.Pitch != 10 {
		t.Errorf("location = %+v", loc)
	}

	sys.Remove(e)
	if _, ok := anchor.Location(); ok {
		t.Error("removed anchor still resolves")
	}
	anchor.Translate(r3.Vec{X: 1}) // must not panic on a dead entity
}

func TestWrapDegrees(t *testing.T) {
	testCases := []struct{ in, want float64 }{
		{0, 0},
		{180, -180},
		{-180, -180},
		{190, -170},
		{-540, -180},
		{725, 5},
	}
	for _, tc := range testCases {
		if got := wrapDegrees(tc.in); got != tc.want {
			t.Errorf("wrapDegrees(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
