package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/clowder/components"
)

// PopulationStats holds aggregated colony statistics for a time window.
type PopulationStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population over the window
	Cats     int     `csv:"cats"`
	CatsMean float64 `csv:"cats_mean"`
	CatsStd  float64 `csv:"cats_std"`
	NapMean  float64 `csv:"nap_frac_mean"`

	// Behavior counts at window end
	Idle          int `csv:"idle"`
	Walking       int `csv:"walking"`
	Running       int `csv:"running"`
	Sleeping      int `csv:"sleeping"`
	Grooming      int `csv:"grooming"`
	ChasingMouse  int `csv:"chasing_mouse"`
	FleeingCursor int `csv:"fleeing_cursor"`
	ChasingCat    int `csv:"chasing_cat"`
	Playing       int `csv:"playing"`
	Zoomies       int `csv:"zoomies"`
	Startled      int `csv:"startled"`
	Yawning       int `csv:"yawning"`
	Parading      int `csv:"parading"`
	Pouncing      int `csv:"pouncing"`
	Stacked       int `csv:"stacked"`

	// Events during window
	Plays     int `csv:"plays"`
	Chases    int `csv:"chases"`
	Flees     int `csv:"flees"`
	NapJoins  int `csv:"nap_joins"`
	ZoomiesIn int `csv:"zoomies_caught"`
	Yawns     int `csv:"yawns"`
	Pounces   int `csv:"pounces"`
	Spawns    int `csv:"spawns"`
	Despawns  int `csv:"despawns"`
	Bounces   int `csv:"bounces"`
	Gifts     int `csv:"gifts"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// setStateCounts copies per-state counts indexed by BehaviorState.
func (s *PopulationStats) setStateCounts(counts []int) {
	at := func(st components.BehaviorState) int {
		if int(st) < len(counts) {
			return counts[st]
		}
		return 0
	}
	s.Idle = at(components.Idle)
	s.Walking = at(components.Walking)
	s.Running = at(components.Running)
	s.Sleeping = at(components.Sleeping)
	s.Grooming = at(components.Grooming)
	s.ChasingMouse = at(components.ChasingMouse)
	s.FleeingCursor = at(components.FleeingCursor)
	s.ChasingCat = at(components.ChasingCat)
	s.Playing = at(components.Playing)
	s.Zoomies = at(components.Zoomies)
	s.Startled = at(components.Startled)
	s.Yawning = at(components.Yawning)
	s.Parading = at(components.Parading)
	s.Pouncing = at(components.Pouncing)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates the mean and median/p90 of cat speeds.
// values is sorted in place.
func ComputeSpeedStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean = stat.Mean(values, nil)
	sort.Float64s(values)
	return mean, Percentile(values, 0.50), Percentile(values, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PopulationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("cats", s.Cats),
		slog.Float64("cats_mean", s.CatsMean),
		slog.Float64("cats_std", s.CatsStd),
		slog.Float64("nap_frac_mean", s.NapMean),
		slog.Int("sleeping", s.Sleeping),
		slog.Int("stacked", s.Stacked),
		slog.Int("plays", s.Plays),
		slog.Int("chases", s.Chases),
		slog.Int("flees", s.Flees),
		slog.Int("nap_joins", s.NapJoins),
		slog.Int("zoomies_caught", s.ZoomiesIn),
		slog.Int("yawns", s.Yawns),
		slog.Int("pounces", s.Pounces),
		slog.Int("spawns", s.Spawns),
		slog.Int("despawns", s.Despawns),
		slog.Int("bounces", s.Bounces),
		slog.Int("gifts", s.Gifts),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s PopulationStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"cats", s.Cats,
		"cats_mean", s.CatsMean,
		"sleeping", s.Sleeping,
		"playing", s.Playing,
		"zoomies", s.Zoomies,
		"stacked", s.Stacked,
		"plays", s.Plays,
		"chases", s.Chases,
		"nap_joins", s.NapJoins,
		"yawns", s.Yawns,
		"pounces", s.Pounces,
		"gifts", s.Gifts,
		"speed_mean", s.SpeedMean,
	)
}
