package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
)

// Max distance in pixels for CatAt to pick a cat.
const pickRadius = 20.0

// CatInfo describes one cat for hover and inspection displays.
type CatInfo struct {
	Entity      ecs.Entity
	Name        string
	X, Y        float32
	State       components.BehaviorState
	Timer       float32
	Personality components.Personality
	Stacked     bool
	InPile      bool
	HasGift     bool
}

// CatAt returns the cat nearest to (x, y) within pickRadius, if any.
func (g *Game) CatAt(x, y float32) (CatInfo, bool) {
	best := float32(pickRadius * pickRadius)
	idx := -1
	for i := range g.snaps {
		s := &g.snaps[i]
		dx, dy := s.X-x, s.Y-y
		if d := dx*dx + dy*dy; d < best {
			best = d
			idx = i
		}
	}
	if idx < 0 {
		return CatInfo{}, false
	}

	s := &g.snaps[idx]
	if !g.world.Alive(s.Entity) {
		return CatInfo{}, false
	}
	info := CatInfo{
		Entity:      s.Entity,
		X:           s.X,
		Y:           s.Y,
		State:       s.State,
		Personality: s.Personality,
		Stacked:     s.IsStacked,
		InPile:      s.InPile,
		HasGift:     s.HasGift,
	}
	if g.nameMap.Has(s.Entity) {
		info.Name = g.nameMap.Get(s.Entity).Value
	}
	if g.stateMap.Has(s.Entity) {
		st := g.stateMap.Get(s.Entity)
		info.State, info.Timer = st.State, st.Timer
	}
	return info, true
}
