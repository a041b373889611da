package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/clowder/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stacked := g.sampleSpeeds()
	stats := g.collector.Flush(g.tick, g.StateCounts(), stacked, g.speeds)
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WritePopulation(stats); err != nil {
		slog.Error("failed to write population", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick, stats.Cats); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sampleSpeeds fills g.speeds from the last snapshot and returns how many
// cats are stacked.
func (g *Game) sampleSpeeds() (stacked int) {
	g.speeds = g.speeds[:0]
	for i := range g.snaps {
		s := &g.snaps[i]
		g.speeds = append(g.speeds, math.Hypot(float64(s.VX), float64(s.VY)))
		if s.IsStacked {
			stacked++
		}
	}
	return stacked
}

// Stats returns an on-demand population summary of the current window
// without resetting it.
func (g *Game) Stats() telemetry.PopulationStats {
	var stats telemetry.PopulationStats
	stats.WindowEndTick = g.tick
	stats.SimTimeSec = g.simTime
	stats.Cats = g.catCount
	stats.Stacked = g.sampleSpeeds()
	stats.SpeedMean, stats.SpeedP50, stats.SpeedP90 = telemetry.ComputeSpeedStats(g.speeds)
	stats.Gifts = g.gifts.Delivered()
	return stats
}
