package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/systems"
)

var (
	treatColor = rl.Color{R: 170, G: 110, B: 60, A: 255}
	laserColor = rl.Color{R: 255, G: 30, B: 30, A: 255}
	yarnColor  = rl.Color{R: 200, G: 70, B: 120, A: 255}
)

// ClickRenderer draws treats and the laser pointer.
type ClickRenderer struct {
	treatLifetime float32
}

// NewClickRenderer creates a click renderer. Treats fade over their
// configured lifetime.
func NewClickRenderer(treatLifetime float32) *ClickRenderer {
	return &ClickRenderer{treatLifetime: max(treatLifetime, 0.001)}
}

// Draw renders the click state. The laser dot follows the cursor.
func (r *ClickRenderer) Draw(click *systems.ClickState, cursorX, cursorY, simTime float32) {
	for _, t := range click.Treats {
		alpha := min(t.Timer/r.treatLifetime*2, 1)
		rl.DrawCircleV(rl.Vector2{X: t.X, Y: t.Y}, 5, fade(treatColor, alpha))
		rl.DrawCircleV(rl.Vector2{X: t.X - 1.5, Y: t.Y - 1.5}, 1.5, fade(rl.White, alpha*0.6))
	}

	if click.LaserOn {
		pulse := 4 + float32(math.Sin(float64(simTime*20)))
		rl.DrawCircleV(rl.Vector2{X: cursorX, Y: cursorY}, pulse*2, fade(laserColor, 0.25))
		rl.DrawCircleV(rl.Vector2{X: cursorX, Y: cursorY}, pulse, laserColor)
	}
}

// DrawYarn renders yarn balls, spinning with their horizontal speed and
// fading out during their last two seconds.
func (r *ClickRenderer) DrawYarn(balls []systems.YarnBall) {
	for _, b := range balls {
		alpha := min(b.Lifetime/2, 1)
		c := rl.Vector2{X: b.X, Y: b.Y}
		rl.DrawCircleV(c, 7, fade(yarnColor, alpha))
		spin := b.X / 7
		for i := 0; i < 2; i++ {
			a := float64(spin) + float64(i)*math.Pi/2
			dx, dy := float32(math.Cos(a))*6, float32(math.Sin(a))*6
			rl.DrawLineV(rl.Vector2{X: b.X - dx, Y: b.Y - dy}, rl.Vector2{X: b.X + dx, Y: b.Y + dy}, fade(rl.White, alpha*0.5))
		}
	}
}
