package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wavefx/renderer"
	"github.com/pthm-cable/wavefx/ui"
)

const controlsText = "[Space] pause  [N] step  [</>] speed  [R] restart  [C] cloud  [F] follow  [Home] camera  [Tab] panels  RMB orbit  wheel zoom"

// Draw renders the game state.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	g.sim.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 18, B: 28, A: 255})

	rl.BeginMode3D(renderer.ToCamera3D(g.camera))
	renderer.DrawGround(40, 1)
	g.drawAnchors()
	g.particleRenderer.Draw(g.sim.Particles())
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawAnchors marks every live anchor and optionally its cached cloud.
func (g *Game) drawAnchors() {
	anchors := g.sim.Anchors()
	for _, w := range g.sim.Waves() {
		loc, ok := anchors.Location(w.Entity)
		if !ok {
			continue
		}
		renderer.DrawAnchor(loc, rl.Orange)
		if g.showCloud {
			renderer.DrawCloud(w.Effect.Cloud(), loc.Pos, 0.03,
				rl.Fade(rl.White, 0.5), rl.Fade(rl.SkyBlue, 0.35))
			rl.DrawLine3D(renderer.Vec3(loc.Pos), renderer.Vec3(r3.Add(loc.Pos, w.Effect.Velocity())), rl.Yellow)
		}
	}
}

// drawUI renders the HUD and panels.
func (g *Game) drawUI() {
	last := g.sim.LastSample()
	g.hud.Draw(ui.HUDData{
		Title:          "Wave",
		Tick:           g.sim.Tick(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Anchors:        g.sim.Anchors().Count(),
		Effects:        g.sim.Effects().Active(),
		Live:           last.Live,
		Dropped:        g.sim.Dropped(),
		Edge:           last.Edge,
		Interior:       last.Interior,
	})
	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsText)

	if !g.showPanels {
		return
	}

	x := int32(rl.GetScreenWidth()) - 260
	g.perfPanel.SetPosition(x, 10)
	g.perfPanel.Draw(g.sim.PerfStats(), g.sim.Registry())

	rows := make([]ui.EffectRow, 0, len(g.sim.Waves()))
	for _, w := range g.sim.Waves() {
		rows = append(rows, ui.EffectRow{
			Name:   w.Name,
			Status: w.Handle.Status().String(),
			State:  w.Effect.State().String(),
			Runs:   w.Handle.TotalRuns(),
		})
	}
	g.effectsPanel.SetPosition(x, 150)
	g.effectsPanel.Draw(rows)
}
