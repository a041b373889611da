// Command bench runs the same headless colony several times with one seed,
// checks that the runs are identical and reports throughput.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 3000, "Ticks per run")
	cats := flag.Int("cats", 500, "Cats per run")
	seed := flag.Int64("seed", 42, "RNG seed shared by every run")
	runs := flag.Int("runs", 2, "Number of runs (at least 2)")
	output := flag.String("output", "", "Write per-run results to this CSV file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))
	report := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	n := max(*runs, 2)
	results := make([]Result, 0, n)
	rates := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			report.Error("bench_failed", "error", err)
			os.Exit(1)
		}
		r := runOnce(cfg, i, *seed, *cats, *ticks)
		results = append(results, r)
		rates = append(rates, r.TicksPerSec)

		report.Info("bench_run",
			"run", i,
			"ticks", humanize.Comma(int64(r.Ticks)),
			"cats", humanize.Comma(int64(r.FinalCats)),
			"elapsed", r.Elapsed.String(),
			"ticks_per_sec", humanize.Comma(int64(r.TicksPerSec)),
			"fingerprint", r.Fingerprint,
		)
	}

	mean, std := stat.MeanStdDev(rates, nil)
	ok := deterministic(results)
	report.Info("bench_summary",
		"runs", n,
		"deterministic", ok,
		"ticks_per_sec_mean", humanize.Comma(int64(mean)),
		"ticks_per_sec_std", humanize.Comma(int64(std)),
	)

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			report.Error("bench_output_failed", "error", err)
			os.Exit(1)
		}
		err = gocsv.MarshalFile(&results, f)
		f.Close()
		if err != nil {
			report.Error("bench_output_failed", "error", err)
			os.Exit(1)
		}
	}

	if !ok {
		os.Exit(2)
	}
}
