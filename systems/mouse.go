package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// CursorState tracks cursor speed and how long it has been still.
type CursorState struct {
	X, Y      float32
	Speed     float32 // px/s over the last update
	StillTime float32 // seconds spent below the still speed

	primed bool
}

// Update records a new cursor sample taken dt seconds after the previous one.
func (c *CursorState) Update(x, y, dt, stillSpeed float32) {
	if !c.primed {
		c.X, c.Y = x, y
		c.primed = true
	}
	if dt < 0.001 {
		dt = 0.001
	}
	c.Speed = length(x-c.X, y-c.Y) / dt
	c.X, c.Y = x, y
	if c.Speed < stillSpeed {
		c.StillTime += dt
	} else {
		c.StillTime = 0
	}
}

// MouseSystem makes cats react to the cursor: the Moses scatter, ongoing
// chase/flee steering, and personality-driven new reactions.
type MouseSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.CatState, components.Personality]
	cfg    config.MouseConfig
}

// NewMouseSystem creates a mouse reaction system.
func NewMouseSystem(w *ecs.World, cfg config.MouseConfig) *MouseSystem {
	return &MouseSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.CatState, components.Personality](w).
			Without(ecs.C[components.SpawnAnimation]()),
		cfg: cfg,
	}
}

// Update applies cursor reactions. chaseEnabled gates new cursor chases.
func (s *MouseSystem) Update(rng *rand.Rand, cursor *CursorState, chaseEnabled bool) {
	cfg := &s.cfg
	moses := cursor.Speed > cfg.MosesThreshold
	still := cursor.StillTime >= cfg.CreepStillTime

	query := s.filter.Query()
	for query.Next() {
		pos, vel, st, pers := query.Get()

		tx, ty := cursor.X-pos.X, cursor.Y-pos.Y
		dist := length(tx, ty)

		if moses && dist < cfg.MosesRadius && dist > 1 {
			ax, ay := -tx/dist, -ty/dist
			falloff := 1 - dist/cfg.MosesRadius
			strength := (cursor.Speed / cfg.MosesThreshold) * cfg.MosesStrength * falloff
			push := min(strength, cfg.MosesMax)
			vel.X += ax * push
			vel.Y += ay * push

			if strength > cfg.MosesOverride {
				switch st.State {
				case components.Idle, components.Sleeping, components.Grooming:
					st.State = components.Running
					st.Timer = 0.3 + rng.Float32()*0.5
				}
			}
			continue
		}

		switch st.State {
		case components.ChasingMouse:
			if dist > cfg.ArriveRadius {
				speed := s.chaseSpeed(pers)
				vel.X, vel.Y = tx/dist*speed, ty/dist*speed
			} else {
				st.State = components.Idle
				st.Timer = 0.5 + rng.Float32()
			}
			continue
		case components.FleeingCursor:
			if dist < cfg.FleeKeepRadius && dist > 1 {
				speed := s.fleeSpeed(pers)
				vel.X, vel.Y = -tx/dist*speed, -ty/dist*speed
			}
			continue
		case components.Idle, components.Walking, components.Grooming:
		default:
			continue
		}

		if pers.Laziness > 0.7 {
			continue
		}

		if pers.Skittishness > 0.6 && dist < cfg.NoticeRadius {
			if rng.Float32() < cfg.FleeChance*pers.Skittishness {
				st.State = components.FleeingCursor
				st.Timer = 1 + rng.Float32()*1.5
				if dist > 1 {
					speed := s.fleeSpeed(pers)
					vel.X, vel.Y = -tx/dist*speed, -ty/dist*speed
				}
				continue
			}
		}

		if pers.Curiosity > 0.5 && pers.Skittishness < 0.4 {
			if chaseEnabled && dist < cfg.NoticeRadius &&
				rng.Float32() < cfg.ChaseChance*(0.5+pers.Curiosity) {
				st.State = components.ChasingMouse
				st.Timer = 2 + rng.Float32()*3
				d := max(dist, 1)
				speed := s.chaseSpeed(pers)
				vel.X, vel.Y = tx/d*speed, ty/d*speed
			}
			continue
		}

		// Cautious cats: rare flee from a fast close cursor, rare creep
		// toward one that has sat still.
		if cursor.Speed > cfg.MosesThreshold && dist < cfg.CautiousRadius {
			if rng.Float32() < cfg.CautiousChance {
				st.State = components.FleeingCursor
				st.Timer = 0.5 + rng.Float32()
				if dist > 1 {
					vel.X, vel.Y = -tx/dist*cfg.CautiousSpeed, -ty/dist*cfg.CautiousSpeed
				}
				continue
			}
		}

		if chaseEnabled && still && pers.Curiosity > 0.4 && dist < cfg.CreepRadius {
			if rng.Float32() < cfg.CreepChance*pers.Curiosity {
				st.State = components.ChasingMouse
				st.Timer = 3 + rng.Float32()*3
				if dist > 1 {
					vel.X, vel.Y = tx/dist*cfg.CreepSpeed, ty/dist*cfg.CreepSpeed
				}
			}
		}
	}
}

func (s *MouseSystem) chaseSpeed(pers *components.Personality) float32 {
	return s.cfg.ChaseSpeed * (0.7 + pers.Curiosity*0.6)
}

func (s *MouseSystem) fleeSpeed(pers *components.Personality) float32 {
	return s.cfg.FleeSpeedMin + (s.cfg.FleeSpeedMax-s.cfg.FleeSpeedMin)*pers.Skittishness
}
