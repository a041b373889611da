package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float32
}

// AvoidanceField is a scalar field cats steer down the gradient of.
type AvoidanceField interface {
	Enabled() bool
	Sample(x, y float32) float32
}

// MovementSystem integrates velocity into position and applies the steering
// terms that do not depend on other cats.
type MovementSystem struct {
	filter ecs.Filter4[components.Position, components.PrevPosition, components.Velocity, components.CatState]
	cfg    config.MovementConfig
}

// NewMovementSystem creates a movement system.
func NewMovementSystem(w *ecs.World, cfg config.MovementConfig) *MovementSystem {
	return &MovementSystem{
		filter: *ecs.NewFilter4[components.Position, components.PrevPosition, components.Velocity, components.CatState](w).
			Without(ecs.C[components.SpawnAnimation]()),
		cfg: cfg,
	}
}

// Update runs one integration step. field may be nil.
func (s *MovementSystem) Update(dt float32, bounds Bounds, field AvoidanceField, edgeAffinity float32) {
	useField := field != nil && field.Enabled()
	cx, cy := bounds.Width*0.5, bounds.Height*0.5
	margin := s.cfg.ScreenMargin

	query := s.filter.Query()
	for query.Next() {
		pos, prev, vel, st := query.Get()

		prev.X, prev.Y = pos.X, pos.Y

		if useField && st.State.Mobile() {
			s.avoid(field, pos, vel)
		}

		// Edge affinity pulls walkers outward from the center.
		if edgeAffinity > 0.01 && st.State == components.Walking {
			ex, ey := pos.X-cx, pos.Y-cy
			if ex*ex+ey*ey > 1 {
				nx, ny := normalize(ex, ey)
				vel.X += nx * edgeAffinity * s.cfg.EdgePull
				vel.Y += ny * edgeAffinity * s.cfg.EdgePull
			}
		}

		s.edgeRepel(pos, vel, bounds)

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		vel.X *= s.cfg.Friction
		vel.Y *= s.cfg.Friction
		minV := s.cfg.MinVelocity
		if vel.X*vel.X+vel.Y*vel.Y < minV*minV {
			vel.X, vel.Y = 0, 0
		}

		pos.X = clampFloat(pos.X, margin, bounds.Width-margin)
		pos.Y = clampFloat(pos.Y, margin, bounds.Height-margin)
	}
}

// avoid pushes the cat down the field gradient when the local value is
// above the threshold.
func (s *MovementSystem) avoid(field AvoidanceField, pos *components.Position, vel *components.Velocity) {
	heat := field.Sample(pos.X, pos.Y)
	if heat <= s.cfg.AvoidThreshold {
		return
	}
	o := s.cfg.AvoidSampleOffset
	gx := field.Sample(pos.X+o, pos.Y) - field.Sample(pos.X-o, pos.Y)
	gy := field.Sample(pos.X, pos.Y+o) - field.Sample(pos.X, pos.Y-o)
	if gx*gx+gy*gy <= 0.0001 {
		return
	}
	nx, ny := normalize(gx, gy)
	k := (heat - s.cfg.AvoidThreshold) * s.cfg.AvoidStrength
	vel.X -= nx * k
	vel.Y -= ny * k
}

// edgeRepel ramps an inward push from zero at EdgeMargin to EdgePush at
// the screen edge.
func (s *MovementSystem) edgeRepel(pos *components.Position, vel *components.Velocity, bounds Bounds) {
	m := s.cfg.EdgeMargin
	if m <= 0 {
		return
	}
	push := s.cfg.EdgePush
	if d := pos.X; d < m {
		vel.X += (1 - clamp01(d/m)) * push
	}
	if d := bounds.Width - pos.X; d < m {
		vel.X -= (1 - clamp01(d/m)) * push
	}
	if d := pos.Y; d < m {
		vel.Y += (1 - clamp01(d/m)) * push
	}
	if d := bounds.Height - pos.Y; d < m {
		vel.Y -= (1 - clamp01(d/m)) * push
	}
}
