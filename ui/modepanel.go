package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/mode"
)

// ModePanel is the raygui control strip: one button per mode, the heatmap
// toggle, pause, and a population target slider.
type ModePanel struct {
	renderer *Renderer
	x, y     int32
	maxCats  float32
}

// NewModePanel creates a mode panel whose slider tops out at maxCats.
func NewModePanel(x, y int32, maxCats int) *ModePanel {
	return &ModePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		maxCats:  float32(max(maxCats, 1)),
	}
}

// SetPosition updates the panel position.
func (m *ModePanel) SetPosition(x, y int32) {
	m.x = x
	m.y = y
}

// Width returns the panel width in pixels.
func (m *ModePanel) Width() int32 {
	return int32(len(mode.All()))*90 + 10
}

// Draw renders the panel and applies any button presses to g.
func (m *ModePanel) Draw(g *game.Game, overlays *OverlayRegistry) {
	const (
		btnW = 80
		btnH = 26
	)
	r := m.renderer
	width := m.Width()
	r.DrawPanel(m.x, m.y, width, 104)

	x := float32(m.x + 10)
	y := float32(m.y + 10)
	current := g.Modes().Mode()
	for i, md := range mode.All() {
		bx := x + float32(i)*90
		if md == current {
			rl.DrawRectangleLines(int32(bx)-2, int32(y)-2, btnW+4, btnH+4, r.Theme.SectionHeader)
		}
		if gui.Button(rl.Rectangle{X: bx, Y: y, Width: btnW, Height: btnH}, md.String()) && md != current {
			g.SetMode(md)
		}
	}
	y += btnH + 8

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: btnW, Height: btnH}, toggleText(overlays.IsEnabled(OverlayHeatmap), "Heat off", "Heat on")) {
		overlays.Toggle(OverlayHeatmap)
	}
	if gui.Button(rl.Rectangle{X: x + 90, Y: y, Width: btnW, Height: btnH}, toggleText(g.Paused(), "Resume", "Pause")) {
		g.SetPaused(!g.Paused())
	}

	target := float32(g.TargetPopulation())
	sliderX := x + 180
	sliderW := float32(width) - 180 - 60
	rl.DrawText("Target", int32(sliderX), int32(y)-2, r.Theme.FontSize, r.Theme.LabelColor)
	next := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y + 12, Width: sliderW, Height: 14},
		"", "",
		target, 0, m.maxCats,
	)
	rl.DrawText(fmt.Sprintf("%.0f", target), int32(sliderX+sliderW)+8, int32(y)+12, r.Theme.FontSize, r.Theme.ValueColor)
	if int(next) != int(target) {
		g.SetTargetPopulation(int(next))
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
