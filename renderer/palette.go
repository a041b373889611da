// Package renderer draws the colony with raylib. It only reads the
// per-frame views exported by the game package.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/mode"
)

// ColorMode selects how cats are colored.
type ColorMode uint8

const (
	ColorCoat  ColorMode = iota // Natural coat color
	ColorState                  // Behavior state
	ColorTrait                  // Strongest personality trait
)

var stateColors = [...]rl.Color{
	components.Idle:          {R: 200, G: 200, B: 200, A: 255},
	components.Walking:       {R: 120, G: 200, B: 120, A: 255},
	components.Running:       {R: 60, G: 220, B: 90, A: 255},
	components.Sleeping:      {R: 90, G: 110, B: 200, A: 255},
	components.Grooming:      {R: 230, G: 170, B: 220, A: 255},
	components.ChasingMouse:  {R: 250, G: 140, B: 40, A: 255},
	components.FleeingCursor: {R: 240, G: 60, B: 60, A: 255},
	components.ChasingCat:    {R: 250, G: 200, B: 60, A: 255},
	components.Playing:       {R: 250, G: 230, B: 90, A: 255},
	components.Zoomies:       {R: 255, G: 90, B: 200, A: 255},
	components.Startled:      {R: 255, G: 255, B: 255, A: 255},
	components.Yawning:       {R: 150, G: 150, B: 230, A: 255},
	components.Parading:      {R: 90, G: 220, B: 220, A: 255},
	components.Pouncing:      {R: 255, G: 120, B: 80, A: 255},
}

// Laziness, Energy, Curiosity, Skittishness.
var traitColors = [...]rl.Color{
	{R: 110, G: 120, B: 220, A: 255},
	{R: 250, G: 190, B: 50, A: 255},
	{R: 80, G: 210, B: 140, A: 255},
	{R: 230, G: 80, B: 90, A: 255},
}

// StateColor returns the debug color for a behavior state.
func StateColor(s components.BehaviorState) rl.Color {
	if int(s) < len(stateColors) {
		return stateColors[s]
	}
	return rl.Magenta
}

// TraitColor returns the color for a personality trait index.
func TraitColor(trait int) rl.Color {
	if trait >= 0 && trait < len(traitColors) {
		return traitColors[trait]
	}
	return rl.Magenta
}

// CoatColor unpacks a 0xRRGGBBAA coat color.
func CoatColor(c uint32) rl.Color {
	return rl.Color{R: uint8(c >> 24), G: uint8(c >> 16), B: uint8(c >> 8), A: uint8(c)}
}

// ApplyTint multiplies c by a day/night tint, keeping alpha.
func ApplyTint(c rl.Color, t mode.Tint) rl.Color {
	return rl.Color{
		R: scaleChannel(c.R, t[0]),
		G: scaleChannel(c.G, t[1]),
		B: scaleChannel(c.B, t[2]),
		A: c.A,
	}
}

func scaleChannel(v uint8, f float32) uint8 {
	x := float32(v) * f
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// fade returns c with its alpha scaled by f in [0, 1].
func fade(c rl.Color, f float32) rl.Color {
	c.A = scaleChannel(c.A, max(0, min(f, 1)))
	return c
}
