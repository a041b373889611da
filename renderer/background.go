package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/mode"
	"github.com/pthm-cable/clowder/systems"
)

// BackgroundRenderer draws the floor gradient and the desktop windows cats
// can perch on.
type BackgroundRenderer struct {
	top, bottom rl.Color
	window      rl.Color
	titleBar    rl.Color
}

// NewBackgroundRenderer creates a background with the given base color.
func NewBackgroundRenderer(baseR, baseG, baseB uint8) *BackgroundRenderer {
	base := rl.Color{R: baseR, G: baseG, B: baseB, A: 255}
	return &BackgroundRenderer{
		top:      base,
		bottom:   ApplyTint(base, mode.Tint{0.7, 0.65, 0.6}),
		window:   rl.Color{R: 60, G: 64, B: 72, A: 200},
		titleBar: rl.Color{R: 90, G: 96, B: 110, A: 230},
	}
}

// Draw renders the background for a screen of width x height.
func (b *BackgroundRenderer) Draw(width, height int32, tint mode.Tint, windows []systems.DesktopWindow) {
	rl.DrawRectangleGradientV(0, 0, width, height, ApplyTint(b.top, tint), ApplyTint(b.bottom, tint))

	for _, w := range windows {
		x, y := int32(w.Left), int32(w.Top)
		ww, wh := int32(w.Right-w.Left), int32(w.Bottom-w.Top)
		rl.DrawRectangle(x, y, ww, wh, b.window)
		rl.DrawRectangle(x, y, ww, 6, b.titleBar)
	}
}
