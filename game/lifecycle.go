package game

import (
	"log/slog"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/systems"
)

// Drop-in cats start this far above the screen, plus up to dropSpread.
const (
	dropHeight = 40
	dropSpread = 120
)

// spawnInitialPopulation creates the starting cats already on screen.
func (g *Game) spawnInitialPopulation(n int) {
	for i := 0; i < n; i++ {
		g.spawnCat(false)
	}
	slog.Info("colony_spawned",
		"cats", humanize.Comma(int64(g.catCount)),
		"seed", g.seed,
	)
}

// spawnCat creates one cat with a random personality, appearance and name.
// Drop-in cats fall from above the screen to a random floor height.
func (g *Game) spawnCat(dropIn bool) ecs.Entity {
	margin := g.cfg.Movement.ScreenMargin
	w := max(g.width-2*margin, 1)
	h := max(g.height-2*margin, 1)
	x := margin + g.rng.Float32()*w
	y := margin + g.rng.Float32()*h

	floorY := y
	if dropIn {
		y = -dropHeight - g.rng.Float32()*dropSpread
	}

	pos := components.Position{X: x, Y: y}
	prev := components.PrevPosition{X: x, Y: y}
	vel := components.Velocity{}
	// Staggered timers keep the colony from switching states in lockstep.
	st := components.CatState{State: components.Idle, Timer: 0.5 + g.rng.Float32()*3}
	pers := components.RandomPersonality(g.rng)
	app := components.RandomAppearance(g.rng)
	name := components.RandomName(g.rng)

	e := g.catMapper.NewEntity(&pos, &prev, &vel, &st, &pers, &app, &name)
	if dropIn {
		g.animMap.Add(e, &components.SpawnAnimation{TargetY: floorY})
	}
	g.catCount++
	return e
}

// SpawnCats adds n cats, dropping them in when configured.
func (g *Game) SpawnCats(n int) {
	for i := 0; i < n; i++ {
		g.spawnCat(g.cfg.Population.DropIn)
	}
	g.collector.RecordSpawns(n)
}

// despawn removes cats that are still alive. Dead references are skipped.
func (g *Game) despawn(cats []ecs.Entity) int {
	removed := 0
	for _, e := range cats {
		if !g.world.Alive(e) {
			continue
		}
		g.world.RemoveEntity(e)
		removed++
	}
	g.catCount -= removed
	g.collector.RecordDespawns(removed)
	return removed
}

// SetTargetPopulation changes the population the colony grows or shrinks to.
func (g *Game) SetTargetPopulation(n int) {
	g.targetCats = max(n, 0)
}

// TargetPopulation returns the current population target.
func (g *Game) TargetPopulation() int {
	return g.targetCats
}

// updatePopulation grows the colony towards the target after the growth
// delay and trims it when the target shrinks.
func (g *Game) updatePopulation(dt float64) {
	pop := &g.cfg.Population
	// AFK bonus cats do not count towards the target.
	base := g.catCount - len(g.bonus)
	if base > g.targetCats {
		g.trimToTarget(base - g.targetCats)
		return
	}
	if g.simTime < pop.GrowthDelay || base >= g.targetCats {
		g.growthAcc = 0
		return
	}

	g.growthAcc += pop.GrowthRate * dt
	n := int(g.growthAcc)
	if n == 0 {
		return
	}
	n = min(n, g.targetCats-base)
	g.growthAcc -= float64(n)
	g.SpawnCats(n)
}

// trimToTarget removes excess cats in query order.
func (g *Game) trimToTarget(excess int) {
	g.despawnList = g.despawnList[:0]

	query := g.catFilter.Query()
	for query.Next() {
		if len(g.despawnList) >= excess {
			query.Close()
			break
		}
		g.despawnList = append(g.despawnList, query.Entity())
	}

	removed := g.despawn(g.despawnList)
	g.bonus = slices.DeleteFunc(g.bonus, func(e ecs.Entity) bool { return !g.world.Alive(e) })
	slog.Info("population_trimmed",
		"removed", humanize.Comma(int64(removed)),
		"cats", humanize.Comma(int64(g.catCount)),
	)
}

// scatterAll startles every cat that has landed.
func (g *Game) scatterAll() {
	query := g.catFilter.Query()
	for query.Next() {
		e := query.Entity()
		if g.animMap.Has(e) {
			continue
		}
		systems.TriggerStartle(query.Get(), g.velMap.Get(e), g.rng, &g.cfg.Behavior)
	}
}
