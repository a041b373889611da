package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Phase names for the simulation tick, in pipeline order. They match the
// IDs in systems.SystemRegistry.
const (
	PhaseCursor    = "cursor"
	PhaseMouse     = "mouse"
	PhaseBehavior  = "behavior"
	PhaseMovement  = "movement"
	PhaseSpatial   = "spatial"
	PhaseSteer     = "steer"
	PhaseDecide    = "decide"
	PhaseApply     = "apply"
	PhasePiles     = "piles"
	PhaseGifts     = "gifts"
	PhaseTowers    = "towers"
	PhasePerch     = "perch"
	PhaseClick     = "click"
	PhaseToys      = "toys"
	PhaseSpawnAnim = "spawnAnim"
	PhaseSweep     = "sweep"
)

// TickPhases lists every phase the game reports, in pipeline order.
var TickPhases = []string{
	PhaseCursor, PhaseMouse, PhaseBehavior, PhaseMovement, PhaseSpatial,
	PhaseSteer, PhaseDecide, PhaseApply, PhasePiles, PhaseGifts,
	PhaseTowers, PhasePerch, PhaseClick, PhaseToys, PhaseSpawnAnim, PhaseSweep,
}

// PerfCollector tracks per-phase tick timings over a rolling window.
// Phase names are fixed at construction so recording never allocates.
type PerfCollector struct {
	phases     []string
	windowSize int

	// Ring buffers: ticks[i] is the tick duration of sample i and
	// phaseDur[i*len(phases)+p] the time spent in phase p.
	ticks       []time.Duration
	phaseDur    []time.Duration
	writeIndex  int
	sampleCount int

	current    []time.Duration
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  int

	scratch []float64

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// A nil phases list means TickPhases.
func NewPerfCollector(windowSize int, phases []string) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	if phases == nil {
		phases = TickPhases
	}
	return &PerfCollector{
		phases:     phases,
		windowSize: windowSize,
		ticks:      make([]time.Duration, windowSize),
		phaseDur:   make([]time.Duration, windowSize*len(phases)),
		current:    make([]time.Duration, len(phases)),
		lastPhase:  -1,
		scratch:    make([]float64, 0, windowSize),
		now:        time.Now,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	clear(p.current)
	p.lastPhase = -1
}

// StartPhase ends the running phase, if any, and starts timing phase.
// Unknown names stop the clock for the previous phase only.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase >= 0 {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = p.indexOf(phase)
}

func (p *PerfCollector) indexOf(phase string) int {
	for i, name := range p.phases {
		if name == phase {
			return i
		}
	}
	return -1
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	if p.lastPhase >= 0 {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.ticks[p.writeIndex] = now.Sub(p.tickStart)
	n := len(p.phases)
	copy(p.phaseDur[p.writeIndex*n:(p.writeIndex+1)*n], p.current)
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown, keyed by phase name
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Phase names in pipeline order
	Phases []string

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(p.phases)),
		PhasePct:      make(map[string]float64, len(p.phases)),
		Phases:        p.phases,
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	p.scratch = p.scratch[:0]
	minTick, maxTick := p.ticks[0], p.ticks[0]
	for _, d := range p.ticks[:p.sampleCount] {
		p.scratch = append(p.scratch, float64(d))
		minTick = min(minTick, d)
		maxTick = max(maxTick, d)
	}
	avgTick := time.Duration(floats.Sum(p.scratch) / float64(p.sampleCount))

	n := len(p.phases)
	for ph, name := range p.phases {
		p.scratch = p.scratch[:0]
		for i := 0; i < p.sampleCount; i++ {
			p.scratch = append(p.scratch, float64(p.phaseDur[i*n+ph]))
		}
		avg := time.Duration(floats.Sum(p.scratch) / float64(p.sampleCount))
		stats.PhaseAvg[name] = avg
		if avgTick > 0 {
			stats.PhasePct[name] = float64(avg) / float64(avgTick) * 100
		}
	}

	stats.AvgTickDuration = avgTick
	stats.MinTickDuration = minTick
	stats.MaxTickDuration = maxTick
	if avgTick > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(avgTick)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range s.Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range s.Phases {
		attrs = append(attrs, slog.Float64(phase+"_pct", s.PhasePct[phase]))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	Cats         int     `csv:"cats"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	CursorPct    float64 `csv:"cursor_pct"`
	MousePct     float64 `csv:"mouse_pct"`
	BehaviorPct  float64 `csv:"behavior_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	SpatialPct   float64 `csv:"spatial_pct"`
	SteerPct     float64 `csv:"steer_pct"`
	DecidePct    float64 `csv:"decide_pct"`
	ApplyPct     float64 `csv:"apply_pct"`
	PilesPct     float64 `csv:"piles_pct"`
	GiftsPct     float64 `csv:"gifts_pct"`
	TowersPct    float64 `csv:"towers_pct"`
	PerchPct     float64 `csv:"perch_pct"`
	ClickPct     float64 `csv:"click_pct"`
	SpawnAnimPct float64 `csv:"spawn_anim_pct"`
	SweepPct     float64 `csv:"sweep_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32, cats int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Cats:         cats,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		CursorPct:    s.PhasePct[PhaseCursor],
		MousePct:     s.PhasePct[PhaseMouse],
		BehaviorPct:  s.PhasePct[PhaseBehavior],
		MovementPct:  s.PhasePct[PhaseMovement],
		SpatialPct:   s.PhasePct[PhaseSpatial],
		SteerPct:     s.PhasePct[PhaseSteer],
		DecidePct:    s.PhasePct[PhaseDecide],
		ApplyPct:     s.PhasePct[PhaseApply],
		PilesPct:     s.PhasePct[PhasePiles],
		GiftsPct:     s.PhasePct[PhaseGifts],
		TowersPct:    s.PhasePct[PhaseTowers],
		PerchPct:     s.PhasePct[PhasePerch],
		ClickPct:     s.PhasePct[PhaseClick],
		SpawnAnimPct: s.PhasePct[PhaseSpawnAnim],
		SweepPct:     s.PhasePct[PhaseSweep],
	}
}
