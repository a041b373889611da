package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

type stackLink struct {
	climber ecs.Entity
	base    ecs.Entity
}

// TowerSystem stacks cats on top of resting cats and collapses the stack
// when either cat gets up.
type TowerSystem struct {
	world  *ecs.World
	filter ecs.Filter1[components.Stacked]

	posMap     *ecs.Map[components.Position]
	velMap     *ecs.Map[components.Velocity]
	stateMap   *ecs.Map[components.CatState]
	appMap     *ecs.Map[components.Appearance]
	stackedMap *ecs.Map[components.Stacked]

	cfg config.TowerConfig

	links      []stackLink
	collapses  []ecs.Entity
	candidates []stackLink
	neighbors  []int32
	baseCounts map[ecs.Entity]int
}

// NewTowerSystem creates a tower system.
func NewTowerSystem(w *ecs.World, cfg config.TowerConfig) *TowerSystem {
	return &TowerSystem{
		world:      w,
		filter:     *ecs.NewFilter1[components.Stacked](w),
		posMap:     ecs.NewMap[components.Position](w),
		velMap:     ecs.NewMap[components.Velocity](w),
		stateMap:   ecs.NewMap[components.CatState](w),
		appMap:     ecs.NewMap[components.Appearance](w),
		stackedMap: ecs.NewMap[components.Stacked](w),
		cfg:        cfg,
		baseCounts: make(map[ecs.Entity]int),
	}
}

// Update collapses broken stacks, snaps climbers onto their bases and
// starts new stacks from the snapshot neighbors.
func (s *TowerSystem) Update(rng *rand.Rand, snaps []CatSnapshot, hash *SpatialHash) {
	s.collectLinks()

	s.collapses = s.collapses[:0]
	for _, l := range s.links {
		if !s.resting(l.base) || !s.resting(l.climber) {
			s.collapses = append(s.collapses, l.climber)
		}
	}
	for _, e := range s.collapses {
		s.stackedMap.Remove(e)
		st := s.stateMap.Get(e)
		st.State = components.Startled
		st.Timer = 0.3
		vel := s.velMap.Get(e)
		vel.Y = -120
		vel.X = (rng.Float32() - 0.5) * 100
	}

	if len(s.collapses) > 0 {
		s.collectLinks()
	}
	clear(s.baseCounts)
	for _, l := range s.links {
		s.baseCounts[l.base]++
		bp := s.posMap.Get(l.base)
		size := s.appMap.Get(l.base).Size
		pos := s.posMap.Get(l.climber)
		pos.X, pos.Y = bp.X, bp.Y-size*s.cfg.Offset
		vel := s.velMap.Get(l.climber)
		vel.X, vel.Y = 0, 0
	}

	s.findCandidates(rng, snaps, hash)
	for _, c := range s.candidates {
		s.stack(rng, c)
	}
}

func (s *TowerSystem) collectLinks() {
	s.links = s.links[:0]
	query := s.filter.Query()
	for query.Next() {
		st := query.Get()
		s.links = append(s.links, stackLink{climber: query.Entity(), base: st.Base})
	}
}

// resting reports whether e is alive and in a state a tower can stand on.
func (s *TowerSystem) resting(e ecs.Entity) bool {
	return s.world.Alive(e) && s.stateMap.Has(e) && s.stateMap.Get(e).State.Stationary()
}

func (s *TowerSystem) findCandidates(rng *rand.Rand, snaps []CatSnapshot, hash *SpatialHash) {
	s.candidates = s.candidates[:0]
	rSq := s.cfg.Radius * s.cfg.Radius
	n := int32(len(snaps))

	for i := range snaps {
		me := &snaps[i]
		if me.State != components.Idle && me.State != components.Walking {
			continue
		}
		if me.Personality.Energy < s.cfg.MinEnergy || me.Personality.Curiosity < s.cfg.MinCuriosity {
			continue
		}
		if me.IsStacked || me.IsBase {
			continue
		}

		s.neighbors = hash.NeighborsInto(s.neighbors[:0], me.X, me.Y)
		for _, j := range s.neighbors {
			if j == int32(i) || j >= n {
				continue
			}
			them := &snaps[j]
			switch them.State {
			case components.Idle, components.Sleeping, components.Grooming:
			default:
				continue
			}
			if them.IsStacked {
				continue
			}
			if distanceSq(me.X, me.Y, them.X, them.Y) > rSq {
				continue
			}
			if s.baseCounts[them.Entity] >= s.cfg.MaxClimbers {
				continue
			}
			if rng.Float32() < s.cfg.Chance*me.Personality.Energy {
				s.candidates = append(s.candidates, stackLink{climber: me.Entity, base: them.Entity})
			}
		}
	}
}

// stack applies a candidate if it is still valid against the live world.
func (s *TowerSystem) stack(rng *rand.Rand, c stackLink) {
	if !s.world.Alive(c.climber) || !s.world.Alive(c.base) {
		return
	}
	if s.stackedMap.Has(c.climber) || s.stackedMap.Has(c.base) {
		return
	}
	if s.baseCounts[c.climber] > 0 || s.baseCounts[c.base] >= s.cfg.MaxClimbers {
		return
	}
	if cs := s.stateMap.Get(c.climber).State; cs != components.Idle && cs != components.Walking {
		return
	}
	if !s.resting(c.base) {
		return
	}

	s.stackedMap.Add(c.climber, &components.Stacked{Base: c.base})
	st := s.stateMap.Get(c.climber)
	st.State = components.Idle
	st.Timer = 5 + rng.Float32()*10
	vel := s.velMap.Get(c.climber)
	vel.X, vel.Y = 0, 0
	s.baseCounts[c.base]++
}
