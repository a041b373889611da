package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// GiftSystem lets curious cats carry a gift to the cursor.
type GiftSystem struct {
	carriers   ecs.Filter3[components.Position, components.Velocity, components.GiftCarrier]
	candidates ecs.Filter2[components.CatState, components.Personality]

	stateMap *ecs.Map[components.CatState]
	velMap   *ecs.Map[components.Velocity]
	giftMap  *ecs.Map[components.GiftCarrier]

	cfg config.GiftConfig

	delivered []ecs.Entity
	expired   []ecs.Entity
	delivers  int
}

// NewGiftSystem creates a gift system.
func NewGiftSystem(w *ecs.World, cfg config.GiftConfig) *GiftSystem {
	return &GiftSystem{
		carriers: *ecs.NewFilter3[components.Position, components.Velocity, components.GiftCarrier](w),
		candidates: *ecs.NewFilter2[components.CatState, components.Personality](w).
			Without(ecs.C[components.GiftCarrier](), ecs.C[components.SpawnAnimation]()),
		stateMap: ecs.NewMap[components.CatState](w),
		velMap:   ecs.NewMap[components.Velocity](w),
		giftMap:  ecs.NewMap[components.GiftCarrier](w),
		cfg:      cfg,
	}
}

// Delivered returns how many gifts reached the cursor so far.
func (s *GiftSystem) Delivered() int {
	return s.delivers
}

// Update steers carriers, drops finished gifts and maybe seeds a new carrier.
func (s *GiftSystem) Update(rng *rand.Rand, dt, cursorX, cursorY float32) {
	s.delivered = s.delivered[:0]
	s.expired = s.expired[:0]
	carrying := 0

	query := s.carriers.Query()
	for query.Next() {
		pos, vel, gift := query.Get()
		gift.Timer -= dt
		if gift.Timer <= 0 {
			s.expired = append(s.expired, query.Entity())
			continue
		}
		carrying++

		tx, ty := cursorX-pos.X, cursorY-pos.Y
		dist := length(tx, ty)
		if dist < s.cfg.DropDistance {
			s.delivered = append(s.delivered, query.Entity())
			continue
		}
		vel.X, vel.Y = tx/dist*s.cfg.CarrySpeed, ty/dist*s.cfg.CarrySpeed
	}

	for _, e := range s.delivered {
		s.drop(rng, e)
		carrying--
		s.delivers++
	}
	for _, e := range s.expired {
		s.drop(rng, e)
	}

	if carrying >= s.cfg.MaxCarriers {
		return
	}

	var chosen ecs.Entity
	found := false
	cq := s.candidates.Query()
	for cq.Next() {
		st, pers := cq.Get()
		if st.State != components.Idle && st.State != components.Walking {
			continue
		}
		if pers.Curiosity < s.cfg.MinCuriosity {
			continue
		}
		if rng.Float32() < s.cfg.SpawnChance {
			chosen = cq.Entity()
			found = true
			cq.Close()
			break
		}
	}
	if !found {
		return
	}
	s.giftMap.Add(chosen, &components.GiftCarrier{Timer: s.cfg.Timeout})
	st := s.stateMap.Get(chosen)
	st.State = components.Walking
	st.Timer = s.cfg.Timeout
}

// drop removes the gift and leaves the cat idle at rest.
func (s *GiftSystem) drop(rng *rand.Rand, e ecs.Entity) {
	s.giftMap.Remove(e)
	st := s.stateMap.Get(e)
	st.State = components.Idle
	st.Timer = 1 + rng.Float32()*2
	vel := s.velMap.Get(e)
	vel.X, vel.Y = 0, 0
}
