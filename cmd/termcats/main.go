// Command termcats runs the colony in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/clowder/audio"
	"github.com/pthm-cable/clowder/config"
	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/termview"
)

const frameInterval = 33 * time.Millisecond

var (
	configPath = flag.String("config", "", "Path to config.yaml (uses embedded defaults if empty)")
	seed       = flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	cats       = flag.Int("cats", 0, "Initial cats (0 = config)")
	logFile    = flag.String("log-file", "", "Write JSON logs to this file (discarded if empty)")
	sound      = flag.Bool("sound", false, "Play sound cues")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "termcats: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sounds := audio.NewSoundManager(0.6)
	if *sound {
		if err := sounds.Initialize(); err != nil {
			slog.Warn("audio_unavailable", "error", err)
		}
	}
	defer sounds.Cleanup()

	g := game.NewGameWithOptions(game.Options{
		Seed:   *seed,
		Cats:   *cats,
		Config: cfg,
	})
	defer g.Unload()

	loop(screen, g, sounds, float32(cfg.Screen.Width), float32(cfg.Screen.Height))
	g.LogColony()
	return nil
}

func loop(screen tcell.Screen, g *game.Game, sounds *audio.SoundManager, simW, simH float32) {
	viewer := termview.New(screen)
	var input termview.Input
	heat := false

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	gifts := g.GiftsDelivered()
	frame := termview.Frame{SimW: simW, SimH: simH}

	for {
		select {
		case ev := <-events:
			switch input.Handle(ev) {
			case termview.ActionQuit:
				return
			case termview.ActionCycleMode:
				g.CycleMode()
				sounds.Play(audio.CueMeow, 1)
			case termview.ActionToggleHeat:
				heat = !heat
				g.Heatmap().SetEnabled(heat)
			case termview.ActionTogglePause:
				g.SetPaused(!g.Paused())
			case termview.ActionGrow:
				g.SetTargetPopulation(g.TargetPopulation() + 10)
			case termview.ActionShrink:
				g.SetTargetPopulation(g.TargetPopulation() - 10)
			}
			if input.Resized {
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			cols, rows := viewer.Grid()
			cx, cy := termview.Unproject(input.CellX, input.CellY, simW, simH, cols, rows)
			g.Update(dt, game.FrameInput{
				ScreenW:    simW,
				ScreenH:    simH,
				CursorX:    cx,
				CursorY:    cy,
				LeftDown:   input.LeftDown,
				RightDown:  input.RightDown,
				MiddleDown: input.MiddleDown,
				KeyActive:  input.Active,
				Now:        now,
			})
			input.Reset()

			sounds.Landing(g.FrameBounces())
			if n := g.GiftsDelivered(); n > gifts {
				sounds.Play(audio.CueChirp, 1)
				gifts = n
			}

			frame.Cats = g.RenderCats(frame.Cats)
			frame.Treats = g.Click().Treats
			frame.Yarn = g.Yarn().Balls
			frame.Heatmap = nil
			if heat {
				frame.Heatmap = g.Heatmap()
			}
			frame.CursorX, frame.CursorY = cx, cy
			frame.Mode = g.Modes().Mode().String()
			frame.AFK = g.Modes().AFKActive()
			frame.Paused = g.Paused()
			frame.Tick = g.TickCount()
			frame.Target = g.TargetPopulation()
			viewer.Draw(&frame)
		}
	}
}
