package game

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/clowder/components"
)

// LogColony logs the current colony state: headcount, behavior breakdown
// and tick throughput.
func (g *Game) LogColony() {
	counts := g.StateCounts()
	attrs := []any{
		"tick", humanize.Comma(int64(g.tick)),
		"sim_time", (time.Duration(g.simTime * float64(time.Second))).Round(time.Second).String(),
		"cats", humanize.Comma(int64(g.catCount)),
		"bonus", len(g.bonus),
		"mode", g.modes.Mode().String(),
		"afk", g.modes.AFKActive(),
		"gifts", g.gifts.Delivered(),
	}
	for s, n := range counts {
		if n > 0 {
			attrs = append(attrs, components.BehaviorState(s).String(), n)
		}
	}
	slog.Info("colony", attrs...)
}

// LogPerf logs per-phase timings, slowest first.
func (g *Game) LogPerf() {
	stats := g.perfCollector.Stats()
	attrs := []any{
		"tick", humanize.Comma(int64(g.tick)),
		"ticks_per_sec", humanize.Comma(int64(stats.TicksPerSecond)),
		"avg_tick", stats.AvgTickDuration.Round(time.Microsecond).String(),
	}
	for _, info := range g.registry.All() {
		if avg := stats.PhaseAvg[info.ID]; avg > 0 {
			attrs = append(attrs, info.ID, avg.Round(time.Microsecond).String())
		}
	}
	slog.Info("perf", attrs...)
}
