package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
)

// CatSnapshot is a read-only copy of one cat's state, valid for the tick
// that built it. Its slice index is the index stored in the spatial hash.
type CatSnapshot struct {
	Entity      ecs.Entity
	X, Y        float32
	VX, VY      float32
	State       components.BehaviorState
	Personality components.Personality
	Size        float32
	Color       uint32
	Pattern     components.Pattern
	IsStacked   bool
	IsBase      bool
	InPile      bool
	Breathing   float32
	HasGift     bool
}

// SnapshotSystem rebuilds the snapshot slice and spatial hash from the world.
// Cats still dropping in are left out.
type SnapshotSystem struct {
	filter     ecs.Filter5[components.Position, components.Velocity, components.CatState, components.Personality, components.Appearance]
	stackedMap *ecs.Map[components.Stacked]
	pileMap    *ecs.Map[components.SleepingPile]
	giftMap    *ecs.Map[components.GiftCarrier]

	index map[ecs.Entity]int32
}

// NewSnapshotSystem creates a snapshot system.
func NewSnapshotSystem(w *ecs.World) *SnapshotSystem {
	return &SnapshotSystem{
		filter: *ecs.NewFilter5[components.Position, components.Velocity, components.CatState, components.Personality, components.Appearance](w).
			Without(ecs.C[components.SpawnAnimation]()),
		stackedMap: ecs.NewMap[components.Stacked](w),
		pileMap:    ecs.NewMap[components.SleepingPile](w),
		giftMap:    ecs.NewMap[components.GiftCarrier](w),
		index:      make(map[ecs.Entity]int32),
	}
}

// Rebuild clears hash, refills snaps in place and returns the resliced
// buffer. Pass the previous return value back in to reuse its capacity.
func (s *SnapshotSystem) Rebuild(hash *SpatialHash, snaps []CatSnapshot) []CatSnapshot {
	snaps = snaps[:0]
	hash.Clear()
	clear(s.index)

	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, st, pers, app := query.Get()

		snap := CatSnapshot{
			Entity:      e,
			X:           pos.X,
			Y:           pos.Y,
			VX:          vel.X,
			VY:          vel.Y,
			State:       st.State,
			Personality: *pers,
			Size:        app.Size,
			Color:       app.Color,
			Pattern:     app.Pattern,
			IsStacked:   s.stackedMap.Has(e),
		}
		if s.pileMap.Has(e) {
			snap.InPile = true
			snap.Breathing = s.pileMap.Get(e).BreathingOffset
		}
		snap.HasGift = s.giftMap.Has(e)

		idx := int32(len(snaps))
		snaps = append(snaps, snap)
		s.index[e] = idx
		hash.Insert(pos.X, pos.Y, idx)
	}

	// Mark bases in a second pass; the base may come after its climber.
	for i := range snaps {
		if !snaps[i].IsStacked {
			continue
		}
		base := s.stackedMap.Get(snaps[i].Entity).Base
		if bi, ok := s.index[base]; ok {
			snaps[bi].IsBase = true
		}
	}
	return snaps
}

// IndexOf returns the snapshot index of e from the last rebuild.
func (s *SnapshotSystem) IndexOf(e ecs.Entity) (int32, bool) {
	idx, ok := s.index[e]
	return idx, ok
}
