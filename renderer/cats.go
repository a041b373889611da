package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/mode"
)

// Body radius of a size 1 cat, in pixels.
const catRadius = 10

var (
	giftColor   = rl.Color{R: 130, G: 120, B: 110, A: 255}
	whiteChest  = rl.Color{R: 245, G: 245, B: 240, A: 255}
	stripeShade = rl.Color{R: 0, G: 0, B: 0, A: 70}
	zzzColor    = rl.Color{R: 200, G: 210, B: 255, A: 200}
)

// CatRenderer draws cats from game.RenderCat views.
type CatRenderer struct {
	Mode ColorMode
}

// NewCatRenderer creates a cat renderer using coat colors.
func NewCatRenderer() *CatRenderer {
	return &CatRenderer{}
}

// Draw renders every cat, tinted for the time of day.
func (r *CatRenderer) Draw(cats []game.RenderCat, tint mode.Tint, simTime float32) {
	for i := range cats {
		c := &cats[i]
		r.drawCat(c, ApplyTint(r.colorOf(c), tint), simTime)
	}
}

func (r *CatRenderer) colorOf(c *game.RenderCat) rl.Color {
	switch r.Mode {
	case ColorState:
		return StateColor(c.State)
	case ColorTrait:
		return TraitColor(c.Trait)
	}
	return CoatColor(c.Color)
}

func (r *CatRenderer) drawCat(c *game.RenderCat, color rl.Color, simTime float32) {
	size := catRadius * c.Size
	x, y := c.X, c.Y

	if c.State == components.Sleeping {
		r.drawSleeping(c, color, size, simTime)
		return
	}

	bodyW, bodyH := size*1.3, size*0.8
	if c.Dropping {
		bodyW, bodyH = size, size*1.1
	}
	if c.State == components.Zoomies || c.State == components.Running {
		bodyW *= 1.15
		bodyH *= 0.9
	}

	// Tail
	tailX := x - c.Facing*bodyW
	sway := float32(math.Sin(float64(simTime*4+x*0.05))) * size * 0.4
	rl.DrawLineEx(rl.Vector2{X: tailX, Y: y}, rl.Vector2{X: tailX - c.Facing*size*0.8, Y: y - size*0.9 + sway}, size*0.25, color)

	// Body
	rl.DrawEllipse(int32(x), int32(y), bodyW, bodyH, color)
	r.drawPattern(c, x, y, bodyW, bodyH, size)

	// Head with ears
	headX := x + c.Facing*bodyW*0.9
	headY := y - bodyH*0.6
	headR := size * 0.6
	rl.DrawCircleV(rl.Vector2{X: headX, Y: headY}, headR, color)
	ear := headR * 0.8
	rl.DrawTriangle(
		rl.Vector2{X: headX - headR, Y: headY - headR*0.3},
		rl.Vector2{X: headX - headR*0.2, Y: headY - headR*0.6},
		rl.Vector2{X: headX - headR*0.7, Y: headY - headR - ear*0.6},
		color,
	)
	rl.DrawTriangle(
		rl.Vector2{X: headX + headR*0.2, Y: headY - headR*0.6},
		rl.Vector2{X: headX + headR, Y: headY - headR*0.3},
		rl.Vector2{X: headX + headR*0.7, Y: headY - headR - ear*0.6},
		color,
	)

	if c.HasGift {
		rl.DrawCircleV(rl.Vector2{X: headX + c.Facing*headR, Y: headY + headR*0.6}, size*0.3, giftColor)
	}
	if c.State == components.Startled {
		rl.DrawText("!", int32(headX)-2, int32(headY-headR*3), 14, rl.White)
	}
}

func (r *CatRenderer) drawSleeping(c *game.RenderCat, color rl.Color, size, simTime float32) {
	breath := float32(1)
	if c.Breathing != 0 {
		breath += 0.05 * float32(math.Sin(float64(c.Breathing)))
	} else {
		breath += 0.03 * float32(math.Sin(float64(simTime*1.5+c.X*0.1)))
	}
	rl.DrawEllipse(int32(c.X), int32(c.Y), size*1.1*breath, size*0.75*breath, color)
	rl.DrawCircleV(rl.Vector2{X: c.X + c.Facing*size*0.6, Y: c.Y - size*0.2}, size*0.45, color)

	// One drifting z per sleeper.
	phase := float32(math.Mod(float64(simTime*0.5+c.X*0.01), 1))
	rl.DrawText("z", int32(c.X+size*0.8), int32(c.Y-size-phase*12), 10, fade(zzzColor, 1-phase))
}

func (r *CatRenderer) drawPattern(c *game.RenderCat, x, y, bodyW, bodyH, size float32) {
	switch c.Pattern {
	case components.PatternTabby:
		for i := -1; i <= 1; i++ {
			sx := x + float32(i)*bodyW*0.35
			rl.DrawLineEx(rl.Vector2{X: sx, Y: y - bodyH*0.9}, rl.Vector2{X: sx, Y: y - bodyH*0.2}, size*0.15, stripeShade)
		}
	case components.PatternSpotted:
		rl.DrawCircleV(rl.Vector2{X: x - bodyW*0.3, Y: y - bodyH*0.2}, size*0.2, stripeShade)
		rl.DrawCircleV(rl.Vector2{X: x + bodyW*0.25, Y: y + bodyH*0.1}, size*0.25, stripeShade)
	case components.PatternTuxedo:
		rl.DrawEllipse(int32(x+c.Facing*bodyW*0.45), int32(y+bodyH*0.2), bodyW*0.35, bodyH*0.55, whiteChest)
	}
}
