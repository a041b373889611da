package components

import "math/rand"

// Pattern selects a coat pattern for rendering.
type Pattern uint8

const (
	PatternSolid Pattern = iota
	PatternTabby
	PatternSpotted
	PatternTuxedo
	patternCount
)

// Appearance holds render-only attributes.
type Appearance struct {
	Color   uint32 // 0xRRGGBBAA
	Pattern Pattern
	Size    float32 // 0.6 to 1.4
}

// Coat colors: orange, gray, black, white, sienna, cream, blue-gray, ginger.
var coatPalette = [...]uint32{
	0xFFA532FF,
	0x505050FF,
	0x1E1E1EFF,
	0xF0F0EBFF,
	0xB48246FF,
	0xFFC896FF,
	0x64646EFF,
	0xC86432FF,
}

// RandomAppearance draws a coat color, pattern and size.
func RandomAppearance(rng *rand.Rand) Appearance {
	return Appearance{
		Color:   coatPalette[rng.Intn(len(coatPalette))],
		Pattern: Pattern(rng.Intn(int(patternCount))),
		Size:    0.6 + rng.Float32()*0.8,
	}
}

// RGBA splits the packed color.
func (a Appearance) RGBA() (r, g, b, alpha uint8) {
	return uint8(a.Color >> 24), uint8(a.Color >> 16), uint8(a.Color >> 8), uint8(a.Color)
}
