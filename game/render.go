package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
)

// RenderCat is the per-frame drawing data for one cat. Positions are
// interpolated between the last two ticks.
type RenderCat struct {
	X, Y      float32
	State     components.BehaviorState
	Color     uint32
	Pattern   components.Pattern
	Size      float32
	Trait     int     // index of the strongest personality trait
	Facing    float32 // sign of horizontal velocity, 1 when still
	Stacked   bool
	Breathing float32 // pile breathing phase, 0 outside piles
	HasGift   bool
	Dropping  bool
}

// renderView holds the filters used to build RenderCat slices.
type renderView struct {
	filter   *ecs.Filter6[components.Position, components.PrevPosition, components.Velocity, components.CatState, components.Appearance, components.Personality]
	stackMap *ecs.Map[components.Stacked]
	pileMap  *ecs.Map[components.SleepingPile]
	giftMap  *ecs.Map[components.GiftCarrier]
}

func (g *Game) view() *renderView {
	if g.rv == nil {
		g.rv = &renderView{
			filter:   ecs.NewFilter6[components.Position, components.PrevPosition, components.Velocity, components.CatState, components.Appearance, components.Personality](g.world),
			stackMap: ecs.NewMap[components.Stacked](g.world),
			pileMap:  ecs.NewMap[components.SleepingPile](g.world),
			giftMap:  ecs.NewMap[components.GiftCarrier](g.world),
		}
	}
	return g.rv
}

// RenderCats appends every cat to dst[:0] and returns it.
func (g *Game) RenderCats(dst []RenderCat) []RenderCat {
	dst = dst[:0]
	alpha := min(g.Alpha(), 1)
	v := g.view()

	query := v.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, prev, vel, st, app, pers := query.Get()

		rc := RenderCat{
			X:        prev.X + (pos.X-prev.X)*alpha,
			Y:        prev.Y + (pos.Y-prev.Y)*alpha,
			State:    st.State,
			Color:    app.Color,
			Pattern:  app.Pattern,
			Size:     app.Size,
			Trait:    pers.Dominant(),
			Facing:   1,
			Stacked:  v.stackMap.Has(e),
			HasGift:  v.giftMap.Has(e),
			Dropping: g.animMap.Has(e),
		}
		if vel.X < 0 {
			rc.Facing = -1
		}
		if v.pileMap.Has(e) {
			rc.Breathing = v.pileMap.Get(e).BreathingOffset + float32(g.simTime)*2
		}
		dst = append(dst, rc)
	}
	return dst
}
