package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// BounceEvent is one landing impact of a dropping cat.
type BounceEvent struct {
	X, Y      float32
	Intensity float32 // 0 to 1
}

// SpawnAnimSystem drops new cats in from above with gravity and a few
// damped bounces.
type SpawnAnimSystem struct {
	filter  ecs.Filter3[components.Position, components.PrevPosition, components.SpawnAnimation]
	animMap *ecs.Map[components.SpawnAnimation]
	cfg     config.SpawnAnimConfig

	done   []ecs.Entity
	events []BounceEvent
}

// NewSpawnAnimSystem creates a spawn animation system.
func NewSpawnAnimSystem(w *ecs.World, cfg config.SpawnAnimConfig) *SpawnAnimSystem {
	return &SpawnAnimSystem{
		filter:  *ecs.NewFilter3[components.Position, components.PrevPosition, components.SpawnAnimation](w),
		animMap: ecs.NewMap[components.SpawnAnimation](w),
		cfg:     cfg,
		events:  make([]BounceEvent, 0, 16),
	}
}

// Update advances every falling cat and returns this tick's impacts. The
// returned slice is reused on the next call.
func (s *SpawnAnimSystem) Update(dt float32) []BounceEvent {
	s.done = s.done[:0]
	s.events = s.events[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, prev, anim := query.Get()

		anim.VelY += s.cfg.Gravity * dt
		prev.Y = pos.Y
		pos.Y += anim.VelY * dt

		if pos.Y < anim.TargetY {
			continue
		}

		intensity := clamp01(abs32(anim.VelY) / s.cfg.ImpactScale)
		pos.Y = anim.TargetY
		anim.Landed = true
		anim.Bounces++
		anim.VelY = -abs32(anim.VelY) * s.cfg.Restitution

		if intensity > s.cfg.MinIntensity {
			s.events = append(s.events, BounceEvent{X: pos.X, Y: anim.TargetY, Intensity: intensity})
		}

		if int(anim.Bounces) >= s.cfg.MaxBounces || abs32(anim.VelY) < s.cfg.MinBounceVelocity {
			prev.Y = anim.TargetY
			s.done = append(s.done, query.Entity())
		}
	}

	for _, e := range s.done {
		s.animMap.Remove(e)
	}
	return s.events
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
