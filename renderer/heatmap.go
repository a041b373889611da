package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/systems"
)

// Cells cooler than this are not drawn.
const heatCutoff = 0.02

// HeatmapRenderer draws the cursor heat field as translucent cells.
type HeatmapRenderer struct {
	cold, hot rl.Color
}

// NewHeatmapRenderer creates a heatmap renderer.
func NewHeatmapRenderer() *HeatmapRenderer {
	return &HeatmapRenderer{
		cold: rl.Color{R: 255, G: 200, B: 60, A: 0},
		hot:  rl.Color{R: 255, G: 40, B: 20, A: 170},
	}
}

// Draw renders h stretched over a width x height screen.
func (r *HeatmapRenderer) Draw(h *systems.Heatmap, width, height int32) {
	cols, rows := h.Dims()
	cw := float32(width) / float32(cols)
	ch := float32(height) / float32(rows)

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			v := h.Cell(cx, cy)
			if v < heatCutoff {
				continue
			}
			rl.DrawRectangleV(
				rl.Vector2{X: float32(cx) * cw, Y: float32(cy) * ch},
				rl.Vector2{X: cw, Y: ch},
				heatColor(r.cold, r.hot, v),
			)
		}
	}
}

// heatColor blends cold to hot by v in [0, 1].
func heatColor(cold, hot rl.Color, v float32) rl.Color {
	v = max(0, min(v, 1))
	lerp := func(a, b uint8) uint8 { return uint8(float32(a) + (float32(b)-float32(a))*v) }
	return rl.Color{R: lerp(cold.R, hot.R), G: lerp(cold.G, hot.G), B: lerp(cold.B, hot.B), A: lerp(cold.A, hot.A)}
}
