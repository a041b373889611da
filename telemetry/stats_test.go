package telemetry

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/systems"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{100, 10, 90, 20, 80, 30, 70, 40, 60, 50}
	mean, p50, p90 := ComputeSpeedStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("expected mean 55, got %v", mean)
	}
	if math.Abs(p50-55) > 0.01 {
		t.Errorf("expected p50 55, got %v", p50)
	}
	if math.Abs(p90-91) > 0.01 {
		t.Errorf("expected p90 91, got %v", p90)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, p50, p90 := ComputeSpeedStats(nil)

	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollector_FlushWindow(t *testing.T) {
	c := NewCollector(1.0, 0.25)

	if got := c.WindowDurationTicks(); got != 4 {
		t.Fatalf("expected 4 ticks per window, got %d", got)
	}

	for tick := int32(1); tick <= 4; tick++ {
		c.Sample(10+int(tick), 5)
	}
	var e ecs.Entity
	c.RecordCommands([]systems.Command{
		{Kind: systems.CmdStartPlay, Entity: e},
		{Kind: systems.CmdStartPlay, Entity: e},
		{Kind: systems.CmdSeedYawn, Entity: e},
		{Kind: systems.CmdContagiousYawn, Entity: e},
		{Kind: systems.CmdCatchZoomies, Entity: e},
	})
	c.RecordSpawns(3)
	c.RecordBounces(2)
	c.RecordGifts(1)

	if !c.ShouldFlush(4) {
		t.Fatal("expected flush after 4 ticks")
	}

	counts := make([]int, components.StateCount())
	counts[components.Sleeping] = 5
	counts[components.Idle] = 9
	stats := c.Flush(4, counts, 2, []float64{0, 40, 80})

	if stats.Cats != 14 {
		t.Errorf("expected 14 cats, got %d", stats.Cats)
	}
	if stats.Sleeping != 5 || stats.Idle != 9 {
		t.Errorf("expected 5 sleeping and 9 idle, got %d and %d", stats.Sleeping, stats.Idle)
	}
	if math.Abs(stats.CatsMean-12.5) > 1e-9 {
		t.Errorf("expected cats mean 12.5, got %v", stats.CatsMean)
	}
	if stats.CatsStd <= 0 {
		t.Errorf("expected positive cats std, got %v", stats.CatsStd)
	}
	if stats.Plays != 2 || stats.Yawns != 2 || stats.ZoomiesIn != 1 {
		t.Errorf("expected plays=2 yawns=2 zoomies=1, got %d %d %d", stats.Plays, stats.Yawns, stats.ZoomiesIn)
	}
	if stats.Spawns != 3 || stats.Bounces != 2 || stats.Gifts != 1 {
		t.Errorf("expected spawns=3 bounces=2 gifts=1, got %d %d %d", stats.Spawns, stats.Bounces, stats.Gifts)
	}
	if stats.Stacked != 2 {
		t.Errorf("expected 2 stacked, got %d", stats.Stacked)
	}
	if stats.SimTimeSec != 1.0 {
		t.Errorf("expected sim time 1.0, got %v", stats.SimTimeSec)
	}

	// Counters reset for the next window.
	if c.ShouldFlush(5) {
		t.Error("expected no flush one tick into the next window")
	}
	next := c.Flush(8, counts, 0, nil)
	if next.Plays != 0 || next.Spawns != 0 || next.CatsMean != 0 {
		t.Errorf("expected reset counters, got plays=%d spawns=%d mean=%v", next.Plays, next.Spawns, next.CatsMean)
	}
}

func TestCollector_SingleSampleHasZeroStd(t *testing.T) {
	c := NewCollector(1.0, 1.0)
	c.Sample(7, 0)

	stats := c.Flush(1, []int{7}, 0, nil)
	if stats.CatsStd != 0 {
		t.Errorf("expected std 0 for one sample, got %v", stats.CatsStd)
	}
	if stats.CatsMean != 7 {
		t.Errorf("expected mean 7, got %v", stats.CatsMean)
	}
}
