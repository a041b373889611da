package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/clowder/config"
	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/mode"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	cats := flag.Int("cats", 0, "Initial cats (0 = config)")
	initialMode := flag.String("mode", "", "Initial mode: work, play, zen or chaos (empty = config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	sound := flag.Bool("sound", true, "Play sound cues in graphical mode")
	demoWindows := flag.Bool("demo-windows", true, "Show two perchable windows in graphical mode")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *initialMode != "" {
		m, err := mode.Parse(*initialMode)
		if err != nil {
			slog.Error("invalid mode flag", "error", err)
			os.Exit(1)
		}
		cfg.Mode.Initial = m.String()
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           *seed,
		Cats:           *cats,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Config:         cfg,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runWindow(opts, windowOptions{
		maxTicks:    *maxTicks,
		sound:       *sound,
		demoWindows: *demoWindows,
	})
}

// runHeadless drives the simulation with the synthetic cursor until
// maxTicks is reached (or forever when maxTicks is 0).
func runHeadless(opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"cats", humanize.Comma(int64(g.CatCount())),
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	start := time.Now()
	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.TickCount()) >= maxTicks {
			break
		}
	}

	elapsed := time.Since(start)
	slog.Info("max ticks reached",
		"tick", g.TickCount(),
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"ticks_per_sec", humanize.Comma(int64(float64(g.TickCount())/max(elapsed.Seconds(), 1e-9))),
	)
	g.LogColony()
	g.LogPerf()
}
