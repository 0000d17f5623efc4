// Package renderer draws the wave world with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/camera"
	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/wave"
)

// Vec3 converts a world vector to a raylib vector.
func Vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// Color converts a standard library color to a raylib color.
func Color(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ToCamera3D converts the orbit camera to a raylib perspective camera.
func ToCamera3D(cam *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   Vec3(cam.Position()),
		Target:     Vec3(cam.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// DrawGround draws the reference grid and axes.
func DrawGround(slices int32, spacing float32) {
	rl.DrawGrid(slices, spacing)
	rl.DrawLine3D(rl.NewVector3(0, 0, 0), rl.NewVector3(1, 0, 0), rl.Red)
	rl.DrawLine3D(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0), rl.Green)
	rl.DrawLine3D(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 1), rl.Blue)
}

// DrawAnchor draws an anchor marker with its horizontal facing.
func DrawAnchor(loc effect.Location, c rl.Color) {
	pos := Vec3(loc.Pos)
	rl.DrawSphere(pos, 0.12, c)

	dir := loc.Direction()
	dir.Y = 0
	if n := r3.Norm(dir); n > 0 {
		tip := r3.Add(loc.Pos, r3.Scale(1/n, dir))
		rl.DrawLine3D(pos, Vec3(tip), c)
	}
}

// DrawCloud draws cached wave offsets around origin. Edge points use
// edgeColor, interior points interiorColor.
func DrawCloud(c *wave.Cloud, origin r3.Vec, size float32, edgeColor, interiorColor rl.Color) {
	for _, p := range c.Points(wave.ClassInterior) {
		rl.DrawCube(Vec3(r3.Add(origin, p)), size, size, size, interiorColor)
	}
	for _, p := range c.Points(wave.ClassEdge) {
		rl.DrawCube(Vec3(r3.Add(origin, p)), size*1.5, size*1.5, size*1.5, edgeColor)
	}
}
