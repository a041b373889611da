package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/clowder/systems"
)

// Collector accumulates events within time windows and produces
// PopulationStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Per-tick samples for the current window
	catSamples []float64
	napSamples []float64

	// Event counters for current window
	plays    int
	chases   int
	flees    int
	napJoins int
	zoomies  int
	yawns    int
	pounces  int
	spawns   int
	despawns int
	bounces  int
	gifts    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		catSamples:          make([]float64, 0, ticksPerWindow),
		napSamples:          make([]float64, 0, ticksPerWindow),
	}
}

// Sample records the population at the end of one tick.
func (c *Collector) Sample(cats, sleeping int) {
	c.catSamples = append(c.catSamples, float64(cats))
	frac := 0.0
	if cats > 0 {
		frac = float64(sleeping) / float64(cats)
	}
	c.napSamples = append(c.napSamples, frac)
}

// RecordCommands counts the social events applied this tick.
func (c *Collector) RecordCommands(cmds []systems.Command) {
	for i := range cmds {
		switch cmds[i].Kind {
		case systems.CmdStartPlay:
			c.plays++
		case systems.CmdStartChase:
			c.chases++
		case systems.CmdFlee:
			c.flees++
		case systems.CmdJoinNap:
			c.napJoins++
		case systems.CmdCatchZoomies:
			c.zoomies++
		case systems.CmdContagiousYawn, systems.CmdSeedYawn:
			c.yawns++
		case systems.CmdStartPounce:
			c.pounces++
		}
	}
}

// RecordSpawns records cats added to the colony.
func (c *Collector) RecordSpawns(n int) {
	c.spawns += n
}

// RecordDespawns records cats removed from the colony.
func (c *Collector) RecordDespawns(n int) {
	c.despawns += n
}

// RecordBounces records drop-in landing impacts.
func (c *Collector) RecordBounces(n int) {
	c.bounces += n
}

// RecordGifts records gifts delivered to the cursor.
func (c *Collector) RecordGifts(n int) {
	c.gifts += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a PopulationStats and resets counters for the next window.
// The caller provides:
// - currentTick: the current simulation tick
// - stateCounts: live cats per BehaviorState
// - stacked: cats currently climbing a tower
// - speeds: current speed of every cat (sorted in place)
func (c *Collector) Flush(currentTick int32, stateCounts []int, stacked int, speeds []float64) PopulationStats {
	cats := 0
	for _, n := range stateCounts {
		cats += n
	}

	var catsMean, catsStd, napMean float64
	if len(c.catSamples) > 0 {
		catsMean, catsStd = stat.MeanStdDev(c.catSamples, nil)
		napMean = stat.Mean(c.napSamples, nil)
	}
	if len(c.catSamples) < 2 {
		catsStd = 0
	}

	speedMean, speedP50, speedP90 := ComputeSpeedStats(speeds)

	stats := PopulationStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Cats:     cats,
		CatsMean: catsMean,
		CatsStd:  catsStd,
		NapMean:  napMean,
		Stacked:  stacked,

		Plays:     c.plays,
		Chases:    c.chases,
		Flees:     c.flees,
		NapJoins:  c.napJoins,
		ZoomiesIn: c.zoomies,
		Yawns:     c.yawns,
		Pounces:   c.pounces,
		Spawns:    c.spawns,
		Despawns:  c.despawns,
		Bounces:   c.bounces,
		Gifts:     c.gifts,

		SpeedMean: speedMean,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,
	}
	stats.setStateCounts(stateCounts)

	// Reset for next window
	c.windowStartTick = currentTick
	c.catSamples = c.catSamples[:0]
	c.napSamples = c.napSamples[:0]
	c.plays = 0
	c.chases = 0
	c.flees = 0
	c.napJoins = 0
	c.zoomies = 0
	c.yawns = 0
	c.pounces = 0
	c.spawns = 0
	c.despawns = 0
	c.bounces = 0
	c.gifts = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
