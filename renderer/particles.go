package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/systems"
)

const (
	puffsPerBounce = 6
	puffLife       = 0.45 // seconds
	puffSpeed      = 90   // px/s at full intensity
	maxPuffs       = 512
)

// DustPuff is one dust particle kicked up by a landing cat.
type DustPuff struct {
	X, Y    float32
	VX, VY  float32
	Life    float32
	MaxLife float32
	Size    float32
}

// ParticleRenderer turns bounce events into short-lived dust puffs.
type ParticleRenderer struct {
	puffs []DustPuff
	color rl.Color
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{
		puffs: make([]DustPuff, 0, 64),
		color: rl.Color{R: 220, G: 205, B: 180, A: 255},
	}
}

// Emit spawns puffs for each bounce, spread evenly around the upper half
// circle and scaled by intensity.
func (r *ParticleRenderer) Emit(events []systems.BounceEvent) {
	for _, ev := range events {
		for i := 0; i < puffsPerBounce; i++ {
			if len(r.puffs) >= maxPuffs {
				return
			}
			angle := math.Pi + math.Pi*float64(i)/float64(puffsPerBounce-1)
			speed := puffSpeed * ev.Intensity
			r.puffs = append(r.puffs, DustPuff{
				X:       ev.X,
				Y:       ev.Y,
				VX:      float32(math.Cos(angle)) * speed,
				VY:      float32(math.Sin(angle)) * speed * 0.5,
				Life:    puffLife,
				MaxLife: puffLife,
				Size:    2 + 4*ev.Intensity,
			})
		}
	}
}

// Update ages and moves the puffs, dropping expired ones in place.
func (r *ParticleRenderer) Update(dt float32) {
	live := r.puffs[:0]
	for _, p := range r.puffs {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= 0.9
		p.VY *= 0.9
		live = append(live, p)
	}
	r.puffs = live
}

// Count returns the number of live puffs.
func (r *ParticleRenderer) Count() int {
	return len(r.puffs)
}

// Draw renders all puffs.
func (r *ParticleRenderer) Draw() {
	for i := range r.puffs {
		p := &r.puffs[i]
		lifeRatio := p.Life / p.MaxLife
		size := max(p.Size*(1.5-lifeRatio*0.5), 0.5)
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, size, fade(r.color, lifeRatio*0.7))
	}
}
