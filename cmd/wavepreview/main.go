// Wave shape preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/wavepreview [-config path] [-save wave.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/wavefx/camera"
	"github.com/pthm-cable/wavefx/config"
	"github.com/pthm-cable/wavefx/renderer"
	"github.com/pthm-cable/wavefx/wave"
)

const (
	windowWidth  = 1200
	windowHeight = 760
	panelWidth   = 340
	sliderWidth  = panelWidth - 110
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	savePath := flag.String("save", "wave.yaml", "File written by the Save button")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Wave Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	shape := cfg.Wave
	yaw := float32(0)
	cam := camera.New(r3.Vec{}, cfg.Camera.Yaw, cfg.Camera.Pitch, cfg.Camera.Distance,
		cfg.Camera.MinDistance, cfg.Camera.MaxDistance)

	cloud := wave.NewCloud(shape)
	animating := false
	needsRebuild := true
	status := ""

	for !rl.WindowShouldClose() {
		if animating {
			yaw = float32(math.Mod(float64(yaw+rl.GetFrameTime()*45), 360))
			needsRebuild = true
		}

		if needsRebuild {
			if err := shape.Validate(); err != nil {
				status = err.Error()
			} else {
				wave.Sample(cloud, shape, float64(yaw))
				status = ""
			}
			needsRebuild = false
		}

		// Orbit with right mouse outside the panel
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			d := rl.GetMouseDelta()
			cam.Orbit(float64(-d.X)*0.3, float64(d.Y)*0.3)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 && rl.GetMouseX() < windowWidth-panelWidth {
			cam.ZoomBy(1 + float64(wheel)*0.1)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 18, B: 28, A: 255})

		rl.BeginMode3D(renderer.ToCamera3D(cam))
		renderer.DrawGround(20, 1)
		renderer.DrawCloud(cloud, r3.Vec{}, 0.05, rl.White, rl.SkyBlue)
		rl.EndMode3D()

		// Stats
		rl.DrawText(fmt.Sprintf("Edge: %d  Interior: %d  Capacity: %d",
			cloud.Edge.Len(), cloud.Interior.Len(), shape.Capacity()), 10, 10, 18, rl.RayWhite)
		if status != "" {
			rl.DrawText(status, 10, 32, 16, rl.Red)
		}

		// Control panel
		panelX := float32(windowWidth - panelWidth)
		rl.DrawRectangle(int32(panelX)-10, 0, panelWidth+10, windowHeight, rl.Color{R: 235, G: 235, B: 235, A: 255})
		panelY := float32(10)

		rl.DrawText("Wave Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		intSlider := func(label string, v *int, min, max float32) {
			nv := int(slider(label, fmt.Sprintf("%d", *v), panelX, &panelY, float32(*v), min, max))
			if nv != *v {
				*v = nv
				changed = true
			}
		}
		floatSlider := func(label string, v *float64, min, max float32) {
			nv := slider(label, fmt.Sprintf("%.2f", *v), panelX, &panelY, float32(*v), min, max)
			if nv != float32(*v) {
				*v = float64(nv)
				changed = true
			}
		}

		intSlider("Particles front", &shape.ParticlesFront, 1, 60)
		intSlider("Particles back", &shape.ParticlesBack, 1, 60)
		intSlider("Rows", &shape.Rows, 1, 60)
		floatSlider("Length front", &shape.LengthFront, 0.1, 6)
		floatSlider("Length back", &shape.LengthBack, 0.1, 8)
		floatSlider("Depth front (curl)", &shape.DepthFront, -2, 3)
		floatSlider("Height back (curl)", &shape.HeightBack, -2, 3)
		floatSlider("Height (crest)", &shape.Height, 0, 5)
		floatSlider("Width", &shape.Width, 0.1, 12)

		newYaw := slider("Yaw", fmt.Sprintf("%.0f", yaw), panelX, &panelY, yaw, 0, 360)
		if newYaw != yaw {
			yaw = newYaw
			changed = true
		}
		if changed {
			needsRebuild = true
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, toggleText(animating, "Stop", "Spin")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "Reset") {
			shape = cfg.Wave
			yaw = 0
			cam.Reset()
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 220, Y: panelY, Width: 100, Height: 30}, "Save") {
			if err := saveShape(*savePath, shape); err != nil {
				status = err.Error()
			} else {
				status = "saved " + *savePath
			}
		}

		rl.DrawText("RMB drag: orbit   wheel: zoom", 10, windowHeight-25, 14, rl.Gray)
		rl.EndDrawing()
	}
}

// slider draws a labelled slider and advances panelY.
func slider(label, value string, x float32, y *float32, v, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	nv := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: *y, Width: sliderWidth, Height: 20},
		fmt.Sprintf("%g", min), fmt.Sprintf("%g", max),
		v, min, max,
	)
	rl.DrawText(value, int32(x+sliderWidth+70), int32(*y+2), 16, rl.DarkGray)
	*y += 30
	return nv
}

// saveShape writes the shape as a config fragment.
func saveShape(path string, s wave.Shape) error {
	data, err := yaml.Marshal(map[string]wave.Shape{"wave": s})
	if err != nil {
		return fmt.Errorf("marshaling shape: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
