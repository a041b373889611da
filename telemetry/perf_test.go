package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10, nil)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpatial)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDecide)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if len(stats.PhaseAvg) != len(TickPhases) {
		t.Errorf("expected %d phase averages, got %d", len(TickPhases), len(stats.PhaseAvg))
	}
	if stats.PhaseAvg[PhaseSpatial] <= 0 {
		t.Error("expected spatial phase to be tracked")
	}
	if stats.PhaseAvg[PhaseDecide] <= 0 {
		t.Error("expected decide phase to be tracked")
	}
	if stats.PhaseAvg[PhaseTowers] != 0 {
		t.Errorf("expected untouched towers phase at 0, got %v", stats.PhaseAvg[PhaseTowers])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5, nil)

	// Wrap the ring buffer twice.
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpatial)
		pc.EndTick()
	}

	if pc.sampleCount != 5 {
		t.Errorf("expected sample count capped at 5, got %d", pc.sampleCount)
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= max, got %v > %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10, []string{"fast", "slow"})
	clock := time.Unix(0, 0)
	pc.now = func() time.Time { return clock }

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		clock = clock.Add(10 * time.Microsecond)
		pc.StartPhase("slow")
		clock = clock.Add(90 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	if fastPct < 9.99 || fastPct > 10.01 {
		t.Errorf("expected fast phase at 10%%, got %v%%", fastPct)
	}
	if slowPct < 89.99 || slowPct > 90.01 {
		t.Errorf("expected slow phase at 90%%, got %v%%", slowPct)
	}
	if total := fastPct + slowPct; total > 100.01 {
		t.Errorf("expected phase percentages to sum to at most 100, got %v", total)
	}
}

func TestPerfCollector_UnknownPhaseStopsClock(t *testing.T) {
	pc := NewPerfCollector(4, []string{"known"})

	pc.StartTick()
	pc.StartPhase("known")
	pc.StartPhase("unknown")
	time.Sleep(200 * time.Microsecond)
	pc.EndTick()

	stats := pc.Stats()
	if stats.PhaseAvg["known"] >= stats.AvgTickDuration {
		t.Errorf("expected unknown phase time excluded, got known=%v tick=%v",
			stats.PhaseAvg["known"], stats.AvgTickDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10, nil)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10, nil)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseDecide: 40,
			PhaseSweep:  5,
		},
	}

	row := stats.ToCSV(600, 25)

	if row.WindowEnd != 600 || row.Cats != 25 {
		t.Errorf("expected window 600 with 25 cats, got %d with %d", row.WindowEnd, row.Cats)
	}
	if row.AvgTickUS != 250 {
		t.Errorf("expected avg tick 250us, got %d", row.AvgTickUS)
	}
	if row.DecidePct != 40 || row.SweepPct != 5 {
		t.Errorf("expected decide 40 and sweep 5, got %v and %v", row.DecidePct, row.SweepPct)
	}
}
