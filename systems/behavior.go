package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// Buckets of the weighted transition, in scan order.
var weightedStates = [5]components.BehaviorState{
	components.Idle,
	components.Sleeping,
	components.Grooming,
	components.Walking,
	components.Running,
}

// BehaviorSystem runs the per-cat state machine: timers tick down and expired
// states pick a successor.
type BehaviorSystem struct {
	filter ecs.Filter3[components.Velocity, components.CatState, components.Personality]
	cfg    config.BehaviorConfig
}

// NewBehaviorSystem creates a behavior system. Cats with a SpawnAnimation
// are skipped until they land.
func NewBehaviorSystem(w *ecs.World, cfg config.BehaviorConfig) *BehaviorSystem {
	return &BehaviorSystem{
		filter: *ecs.NewFilter3[components.Velocity, components.CatState, components.Personality](w).
			Without(ecs.C[components.SpawnAnimation]()),
		cfg: cfg,
	}
}

// Update advances every timer by dt and transitions the expired ones.
func (s *BehaviorSystem) Update(rng *rand.Rand, dt, energyScale float32) {
	query := s.filter.Query()
	for query.Next() {
		vel, st, pers := query.Get()

		st.Timer -= dt
		if st.Timer <= 0 {
			s.transition(rng, st, vel, pers, energyScale)
		}
		if st.Timer < 0 {
			st.Timer = 0
		}
	}
}

func (s *BehaviorSystem) transition(rng *rand.Rand, st *components.CatState, vel *components.Velocity, pers *components.Personality, energyScale float32) {
	switch st.State {
	case components.Startled:
		st.State = components.Running
		st.Timer = 0.8 + rng.Float32()*1.5
		hx, hy := randomHeading(rng)
		vel.X, vel.Y = hx*s.cfg.RunSpeed, hy*s.cfg.RunSpeed
		return
	case components.Yawning:
		st.State = components.Sleeping
		st.Timer = 3 + rng.Float32()*5
		vel.X, vel.Y = 0, 0
		return
	case components.Zoomies:
		st.State = components.Idle
		st.Timer = 1 + rng.Float32()*3
		return
	case components.Parading:
		st.State = components.Walking
		st.Timer = 2 + rng.Float32()*4
		return
	}

	if rng.Float32() < s.cfg.ZoomiesChance*pers.Energy*energyScale {
		s.enter(rng, st, vel, pers, components.Zoomies, energyScale)
		return
	}

	weights := [5]float32{
		s.cfg.IdleWeight + pers.Laziness*s.cfg.IdleLaziness,
		s.cfg.SleepWeight + pers.Laziness*s.cfg.SleepLaziness,
		s.cfg.GroomWeight,
		(s.cfg.WalkWeight + pers.Energy*s.cfg.WalkEnergy) * energyScale,
		(s.cfg.RunWeight + pers.Energy*s.cfg.RunEnergy) * energyScale,
	}
	s.enter(rng, st, vel, pers, PickWeightedState(weights, rng.Float32()), energyScale)
}

// enter puts the cat into next with a fresh duration and, for locomotion,
// a random heading.
func (s *BehaviorSystem) enter(rng *rand.Rand, st *components.CatState, vel *components.Velocity, pers *components.Personality, next components.BehaviorState, energyScale float32) {
	st.State = next
	var speed float32
	switch next {
	case components.Idle:
		st.Timer = 1 + rng.Float32()*3
	case components.Sleeping:
		st.Timer = 3 + rng.Float32()*5
	case components.Grooming:
		st.Timer = 1.5 + rng.Float32()*2
	case components.Walking:
		st.Timer = 2 + rng.Float32()*4
		speed = s.cfg.WalkSpeed
	case components.Running:
		st.Timer = 0.8 + rng.Float32()*1.5
		speed = s.cfg.RunSpeed
	case components.Zoomies:
		st.Timer = 1 + rng.Float32()
		speed = s.cfg.ZoomiesSpeed
	}

	// Stationary states keep their velocity; friction bleeds it off.
	if speed == 0 {
		return
	}
	speed *= (0.5 + pers.Energy*0.5) * energyScale
	hx, hy := randomHeading(rng)
	vel.X, vel.Y = hx*speed, hy*speed
}

// PickWeightedState scans the buckets Idle, Sleeping, Grooming, Walking,
// Running in that order and returns the first whose cumulative weight
// exceeds roll*total. roll is in [0, 1). Running is the fallback when
// rounding leaves the roll past the last bucket.
func PickWeightedState(weights [5]float32, roll float32) components.BehaviorState {
	var total float32
	for _, w := range weights {
		total += w
	}
	target := roll * total
	var cum float32
	for i, w := range weights {
		cum += w
		if target < cum {
			return weightedStates[i]
		}
	}
	return components.Running
}

// TriggerStartle forces the cat into Startled with an upward hop. It
// bypasses the weighted draw.
func TriggerStartle(st *components.CatState, vel *components.Velocity, rng *rand.Rand, cfg *config.BehaviorConfig) {
	st.State = components.Startled
	st.Timer = cfg.StartleDuration
	vel.Y -= cfg.StartleJump
	vel.X += (rng.Float32() - 0.5) * cfg.StartleLateral
}
