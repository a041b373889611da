package game

import (
	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/systems"
	"github.com/pthm-cable/clowder/telemetry"
)

// TickInput is everything one fixed tick reads from outside the simulation.
type TickInput struct {
	DT           float32
	ScreenW      float32
	ScreenH      float32
	CursorX      float32
	CursorY      float32
	LeftDown     bool
	RightDown    bool
	MiddleDown   bool
	EnergyScale  float32
	EdgeAffinity float32
	ChaseEnabled bool
	Windows      []systems.DesktopWindow
}

// Tick advances the simulation by one fixed step. Screen dimensions must be
// positive; Update guards this for frame-driven callers.
func (g *Game) Tick(in TickInput) {
	pc := g.perfCollector
	pc.StartTick()

	if in.ScreenW != g.width || in.ScreenH != g.height {
		g.width, g.height = in.ScreenW, in.ScreenH
		g.heatmap.Resize(in.ScreenW, in.ScreenH)
	}
	bounds := systems.Bounds{Width: in.ScreenW, Height: in.ScreenH}

	pc.StartPhase(telemetry.PhaseCursor)
	g.cursor.Update(in.CursorX, in.CursorY, in.DT, g.cfg.Mouse.StillSpeed)
	g.heatmap.Update(in.CursorX, in.CursorY, in.DT)
	g.click.Update(in.LeftDown, in.RightDown, in.MiddleDown, in.CursorX, in.CursorY, in.DT)

	pc.StartPhase(telemetry.PhaseMouse)
	g.mouse.Update(g.rng, &g.cursor, in.ChaseEnabled)

	pc.StartPhase(telemetry.PhaseBehavior)
	g.behavior.Update(g.rng, in.DT, in.EnergyScale)

	pc.StartPhase(telemetry.PhaseMovement)
	g.movement.Update(in.DT, bounds, g.heatmap, in.EdgeAffinity)

	pc.StartPhase(telemetry.PhaseSpatial)
	g.snaps = g.snapshot.Rebuild(g.hash, g.snaps)

	pc.StartPhase(telemetry.PhaseSteer)
	g.interaction.SteerActive(g.rng)

	pc.StartPhase(telemetry.PhaseDecide)
	g.interaction.Decide(g.rng, g.snaps, g.hash)

	pc.StartPhase(telemetry.PhaseApply)
	g.interaction.Apply(g.rng, g.snaps)
	g.collector.RecordCommands(g.interaction.Commands())

	pc.StartPhase(telemetry.PhasePiles)
	g.interaction.UpdatePiles(g.rng, g.snaps)

	pc.StartPhase(telemetry.PhaseGifts)
	g.gifts.Update(g.rng, in.DT, in.CursorX, in.CursorY)

	pc.StartPhase(telemetry.PhaseTowers)
	g.towers.Update(g.rng, g.snaps, g.hash)

	pc.StartPhase(telemetry.PhasePerch)
	g.perch.Update(g.rng, in.Windows)

	pc.StartPhase(telemetry.PhaseClick)
	g.clicks.Update(g.rng, g.click, in.CursorX, in.CursorY)

	pc.StartPhase(telemetry.PhaseToys)
	if g.click.MiddleClicked {
		g.yarn.Spawn(in.CursorX, in.CursorY)
	}
	g.yarn.Update(in.DT, in.ScreenW, in.ScreenH, in.CursorX, in.CursorY)
	g.toys.Update(g.yarn)

	pc.StartPhase(telemetry.PhaseSpawnAnim)
	g.bounces = g.spawnAnim.Update(in.DT)

	pc.StartPhase(telemetry.PhaseSweep)
	g.interaction.SweepRelations()

	pc.EndTick()

	g.tick++
	g.simTime += float64(in.DT)
	g.recordTick()
	g.flushTelemetry()
}

// recordTick feeds the stats window with this tick's counts.
func (g *Game) recordTick() {
	sleeping := 0
	for i := range g.snaps {
		if g.snaps[i].State == components.Sleeping {
			sleeping++
		}
	}
	g.collector.Sample(g.catCount, sleeping)
	g.collector.RecordBounces(len(g.bounces))

	if delivered := g.gifts.Delivered(); delivered != g.lastGifts {
		g.collector.RecordGifts(delivered - g.lastGifts)
		g.lastGifts = delivered
	}
}
