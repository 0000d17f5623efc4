package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wavefx/systems"
	"github.com/pthm-cable/wavefx/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Anchors        int
	Effects        int
	Live           int // particles buffered for rendering
	Dropped        int
	Edge           int // crest particles displayed last tick
	Interior       int // water particles displayed last tick
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Anchors: %d | Effects: %d | Live: %d | Dropped: %d", data.Anchors, data.Effects, data.Live, data.Dropped),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Edge: %d | Interior: %d",
			data.Tick, data.StepsPerUpdate, data.FPS, data.Edge, data.Interior),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	r := p.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(telemetry.Phases)+2) + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+padding, p.y+padding, "System Performance")
	y = r.DrawLabelValue(p.x+padding, y, "Tick", fmt.Sprintf("%s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))

	for _, phase := range telemetry.Phases {
		name := phase
		if registry != nil {
			name = registry.Name(phase)
		}
		y = r.DrawBar(p.x+padding, y, name, float32(stats.PhasePct[phase]/100), p.width-padding*2)
	}
}

// EffectRow is one scheduled effect in the effects panel.
type EffectRow struct {
	Name   string
	Status string
	State  string
	Runs   int
}

// EffectsPanel lists the scheduled effects.
type EffectsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewEffectsPanel creates a new effects panel.
func NewEffectsPanel(x, y, width int32) *EffectsPanel {
	return &EffectsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (e *EffectsPanel) SetPosition(x, y int32) {
	e.x = x
	e.y = y
}

// Draw renders up to 10 effect rows.
func (e *EffectsPanel) Draw(rows []EffectRow) {
	const maxRows = 10

	r := e.renderer
	padding := r.Theme.Padding
	n := min(len(rows), maxRows)
	height := r.Theme.LineHeight*int32(n+1) + padding*2
	r.DrawPanel(e.x, e.y, e.width, height)

	y := r.DrawSectionHeader(e.x+padding, e.y+padding, fmt.Sprintf("Effects (%d)", len(rows)))
	for _, row := range rows[:n] {
		y = r.DrawLabelValue(e.x+padding, y, row.Name, fmt.Sprintf("%s/%s runs=%d", row.Status, row.State, row.Runs))
	}
}
