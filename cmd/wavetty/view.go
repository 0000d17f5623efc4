package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wavefx/systems"
)

// Projection selects which world plane the view shows.
type Projection uint8

const (
	ProjectTop  Projection = iota // X right, Z up
	ProjectSide                   // X right, Y up
)

func (p Projection) String() string {
	if p == ProjectSide {
		return "side"
	}
	return "top"
}

// densityRunes shade a cell by how many particles land in it.
var densityRunes = []rune{'·', '∙', '•', '●', '█'}

var (
	rgbBackground = tcell.NewRGBColor(12, 18, 28)
	rgbStatus     = tcell.NewRGBColor(200, 200, 200)
	rgbAnchor     = tcell.NewRGBColor(255, 165, 0)
)

// View projects world positions onto terminal cells.
type View struct {
	Projection Projection
	CenterX    float64 // world X at the screen center
	CenterV    float64 // world Z (top) or Y (side) at the screen center
	Scale      float64 // columns per world unit

	counts []int
	colors []tcell.Color
}

// NewView creates a top-down view.
func NewView(scale float64) *View {
	return &View{Scale: scale}
}

// Cell returns the screen cell of a world position. Cells are twice as tall
// as they are wide, so rows use half the column scale.
func (v *View) Cell(x, y, z float64, width, height int) (col, row int, ok bool) {
	vert := z
	if v.Projection == ProjectSide {
		vert = y
	}
	col = int(math.Floor(float64(width)/2 + (x-v.CenterX)*v.Scale))
	row = int(math.Floor(float64(height)/2 - (vert-v.CenterV)*v.Scale/2))
	ok = col >= 0 && col < width && row >= 0 && row < height
	return col, row, ok
}

// Zoom multiplies the scale by factor.
func (v *View) Zoom(factor float64) {
	v.Scale = math.Max(0.5, math.Min(200, v.Scale*factor))
}

// Pan moves the center by whole cells.
func (v *View) Pan(cols, rows int) {
	v.CenterX += float64(cols) / v.Scale
	v.CenterV -= float64(rows) * 2 / v.Scale
}

// Draw renders particles and anchors; the bottom row is left for the status line.
func (v *View) Draw(screen tcell.Screen, particles []systems.LiveParticle, anchors [][3]float64, status string) {
	width, height := screen.Size()
	plotH := height - 1
	if width <= 0 || plotH <= 0 {
		return
	}

	bg := tcell.StyleDefault.Background(rgbBackground)
	screen.Fill(' ', bg)

	n := width * plotH
	if cap(v.counts) < n {
		v.counts = make([]int, n)
		v.colors = make([]tcell.Color, n)
	}
	v.counts = v.counts[:n]
	v.colors = v.colors[:n]
	clear(v.counts)

	for i := range particles {
		p := &particles[i]
		col, row, ok := v.Cell(p.Pos.X, p.Pos.Y, p.Pos.Z, width, plotH)
		if !ok {
			continue
		}
		idx := row*width + col
		v.counts[idx]++
		// Brightest recent particle wins the cell color
		life := p.LifeRatio()
		v.colors[idx] = tcell.NewRGBColor(
			int32(float32(p.Color.R)*life),
			int32(float32(p.Color.G)*life),
			int32(float32(p.Color.B)*life),
		)
	}

	for idx, c := range v.counts {
		if c == 0 {
			continue
		}
		r := densityRunes[min(c, len(densityRunes))-1]
		screen.SetContent(idx%width, idx/width, r, nil, bg.Foreground(v.colors[idx]))
	}

	for _, a := range anchors {
		if col, row, ok := v.Cell(a[0], a[1], a[2], width, plotH); ok {
			screen.SetContent(col, row, '◆', nil, bg.Foreground(rgbAnchor))
		}
	}

	drawText(screen, 0, height-1, width, status, bg.Foreground(rgbStatus))
}

// drawText writes s on row y, clipped to width.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// statusLine formats the bottom line.
func statusLine(tick int32, live, anchors, effects int, v *View, paused bool) string {
	state := ""
	if paused {
		state = " PAUSED"
	}
	return fmt.Sprintf(" tick %d  particles %d  anchors %d  effects %d  view %s x%.1f%s  [q]uit [space] [v]iew [r]estart [+/-] arrows",
		tick, live, anchors, effects, v.Projection, v.Scale, state)
}
