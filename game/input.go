package game

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/clowder/mode"
	"github.com/pthm-cable/clowder/systems"
)

// Cursor movement below this many pixels per frame does not reset idle time.
const idleJitter = 1.0

// FrameInput is what a front-end samples once per rendered frame.
type FrameInput struct {
	ScreenW    float32
	ScreenH    float32
	CursorX    float32
	CursorY    float32
	LeftDown   bool
	RightDown  bool
	MiddleDown bool
	KeyActive  bool      // any key pressed this frame
	Now        time.Time // wall clock for day/night; zero disables it
	Windows    []systems.DesktopWindow
}

// Update advances the simulation by a frame of frameDT wall-clock seconds,
// running as many fixed ticks as the accumulator allows.
func (g *Game) Update(frameDT float64, in FrameInput) {
	if in.ScreenW <= 0 || in.ScreenH <= 0 {
		return
	}

	if g.path == nil {
		g.perfCollector.RecordFrame()
	}
	g.trackIdle(frameDT, &in)
	g.applyAFK(g.modes.UpdateAFK(g.idle, frameDT))

	g.energyMod = 1
	if !in.Now.IsZero() {
		g.energyMod = mode.EnergyModifier(mode.Hour(in.Now))
	}

	g.frameBounces = g.frameBounces[:0]
	if g.paused {
		return
	}

	g.accumulator += frameDT
	if g.accumulator > g.cfg.Sim.MaxAccumulator {
		g.accumulator = g.cfg.Sim.MaxAccumulator
	}

	dt := g.cfg.Sim.DT
	tick := TickInput{
		DT:           g.cfg.Derived.DT32,
		ScreenW:      in.ScreenW,
		ScreenH:      in.ScreenH,
		CursorX:      in.CursorX,
		CursorY:      in.CursorY,
		LeftDown:     in.LeftDown,
		RightDown:    in.RightDown,
		MiddleDown:   in.MiddleDown,
		EnergyScale:  g.modes.EnergyScale() * g.energyMod,
		EdgeAffinity: g.modes.EdgeAffinity(),
		ChaseEnabled: g.modes.ChaseEnabled(),
		Windows:      in.Windows,
	}
	for g.accumulator >= dt {
		g.Tick(tick)
		g.frameBounces = append(g.frameBounces, g.bounces...)
		g.updatePopulation(dt)
		g.accumulator -= dt
	}
}

// UpdateHeadless runs StepsPerUpdate ticks with the synthetic cursor and
// the configured screen size.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Sim.DT
	for i := 0; i < g.stepsPerUpdate; i++ {
		var x, y float32
		if g.path != nil {
			x, y = g.path.Advance(g.cfg.Derived.DT32)
		}
		g.Update(dt, FrameInput{
			ScreenW: g.cfg.Derived.ScreenW32,
			ScreenH: g.cfg.Derived.ScreenH32,
			CursorX: x,
			CursorY: y,
		})
	}
}

// Alpha returns how far the accumulator is into the next tick, for render
// interpolation.
func (g *Game) Alpha() float32 {
	return float32(g.accumulator / g.cfg.Sim.DT)
}

// IdleSeconds returns the time since the last user input.
func (g *Game) IdleSeconds() float64 {
	return g.idle
}

// EnergyModifier returns the day/night factor applied on the last frame.
func (g *Game) EnergyModifier() float32 {
	return g.energyMod
}

// CycleMode switches to the next mode.
func (g *Game) CycleMode() {
	g.modes.Cycle()
	slog.Info("mode_changed", "mode", g.modes.Mode().String())
}

// SetMode switches to m.
func (g *Game) SetMode(m mode.Mode) {
	g.modes.SetMode(m)
	slog.Info("mode_changed", "mode", m.String())
}

func (g *Game) trackIdle(frameDT float64, in *FrameInput) {
	moved := false
	if g.hasLast {
		dx, dy := in.CursorX-g.lastX, in.CursorY-g.lastY
		moved = dx*dx+dy*dy > idleJitter*idleJitter
	}
	g.lastX, g.lastY, g.hasLast = in.CursorX, in.CursorY, true

	if moved || in.LeftDown || in.RightDown || in.MiddleDown || in.KeyActive {
		g.idle = 0
		return
	}
	g.idle += frameDT
}

// applyAFK carries out what AFK escalation asked for.
func (g *Game) applyAFK(a mode.Action) {
	switch a.Kind {
	case mode.ActionSpawn:
		for i := 0; i < a.Count; i++ {
			g.bonus = append(g.bonus, g.spawnCat(g.cfg.Population.DropIn))
		}
		g.collector.RecordSpawns(a.Count)
		slog.Info("afk_spawn",
			"count", a.Count,
			"bonus", humanize.Comma(int64(len(g.bonus))),
			"mode", g.modes.Mode().String(),
		)
	case mode.ActionScatterAndDespawn:
		g.scatterAll()
		n := min(a.Count, len(g.bonus))
		removed := g.despawn(g.bonus[len(g.bonus)-n:])
		g.bonus = g.bonus[:len(g.bonus)-n]
		slog.Info("afk_return",
			"despawned", humanize.Comma(int64(removed)),
			"mode", g.modes.Mode().String(),
		)
	case mode.ActionScatter:
		g.scatterAll()
		slog.Info("afk_return", "mode", g.modes.Mode().String())
	}
}
