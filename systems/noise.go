package systems

import (
	"github.com/ojrac/opensimplex-go"
)

// CursorPath produces a smooth pseudo-random cursor trajectory for headless
// and benchmark runs. It drifts around the screen, with occasional pauses
// and bursts fast enough to trigger the Moses scatter.
type CursorPath struct {
	noise         opensimplex.Noise
	width, height float32
	t             float64
	x, y          float32
}

// NewCursorPath creates a path over a width x height screen.
func NewCursorPath(seed int64, width, height float32) *CursorPath {
	p := &CursorPath{
		noise:  opensimplex.NewNormalized(seed),
		width:  width,
		height: height,
	}
	p.x, p.y = p.target()
	return p
}

// Advance moves along the path by dt seconds and returns the new position.
func (p *CursorPath) Advance(dt float32) (float32, float32) {
	// Channel 2 modulates pace: low values park the cursor, high values
	// make it dart.
	pace := p.noise.Eval2(p.t*0.05, 97.3)
	switch {
	case pace < 0.35:
		p.t += float64(dt) * 0.01
	case pace > 0.8:
		p.t += float64(dt) * 1.5
	default:
		p.t += float64(dt) * 0.15
	}
	p.x, p.y = p.target()
	return p.x, p.y
}

// Position returns the current position without advancing.
func (p *CursorPath) Position() (float32, float32) {
	return p.x, p.y
}

func (p *CursorPath) target() (float32, float32) {
	nx := p.noise.Eval2(p.t, 0)
	ny := p.noise.Eval2(0, p.t+31.7)
	return float32(nx) * p.width, float32(ny) * p.height
}
