package main

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/pthm-cable/clowder/config"
	"github.com/pthm-cable/clowder/game"
)

// Result is one benchmark run. Fingerprint hashes every snapshot of every
// tick, so equal fingerprints mean identical trajectories.
type Result struct {
	Run          int           `csv:"run"`
	Seed         int64         `csv:"seed"`
	Cats         int           `csv:"cats"`
	Ticks        int           `csv:"ticks"`
	FinalCats    int           `csv:"final_cats"`
	Fingerprint  string        `csv:"fingerprint"`
	Elapsed      time.Duration `csv:"-"`
	ElapsedMS    int64         `csv:"elapsed_ms"`
	TicksPerSec  float64       `csv:"ticks_per_sec"`
	AvgTickMicro int64         `csv:"avg_tick_us"`
}

// loadConfig returns a fresh config for one run. Runs must not share a
// config because the game may adjust it.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	// Hold the population at the requested size.
	cfg.Population.GrowthDelay = math.MaxFloat64
	return cfg, nil
}

// runOnce simulates ticks ticks with cats cats and returns the timing and
// trajectory fingerprint.
func runOnce(cfg *config.Config, run int, seed int64, cats, ticks int) Result {
	cfg.Population.Target = cats
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Cats:           cats,
		Headless:       true,
		StepsPerUpdate: 1,
		Config:         cfg,
	})
	defer g.Unload()

	h := fnv.New64a()
	var buf [8]byte
	write := func(v float32) {
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
		h.Write(buf[:4])
	}

	start := time.Now()
	for int(g.TickCount()) < ticks {
		g.UpdateHeadless()
		for _, s := range g.Snapshots() {
			write(s.X)
			write(s.Y)
			buf[0] = byte(s.State)
			h.Write(buf[:1])
		}
	}
	elapsed := time.Since(start)

	r := Result{
		Run:         run,
		Seed:        seed,
		Cats:        cats,
		Ticks:       int(g.TickCount()),
		FinalCats:   g.CatCount(),
		Fingerprint: fmt.Sprintf("%016x", h.Sum64()),
		Elapsed:     elapsed,
		ElapsedMS:   elapsed.Milliseconds(),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		r.TicksPerSec = float64(r.Ticks) / secs
	}
	if r.Ticks > 0 {
		r.AvgTickMicro = elapsed.Microseconds() / int64(r.Ticks)
	}
	return r
}

// deterministic reports whether every run produced the same trajectory.
func deterministic(results []Result) bool {
	for _, r := range results[1:] {
		if r.Fingerprint != results[0].Fingerprint {
			return false
		}
	}
	return true
}
