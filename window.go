package main

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/audio"
	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/mode"
	"github.com/pthm-cable/clowder/renderer"
	"github.com/pthm-cable/clowder/systems"
	"github.com/pthm-cable/clowder/ui"
)

const controlsHelp = "F11: mode | Space: pause | Tab: overlays | H: heat | S/T: colors | N: names | P: perf | I: inspect | C: stats | L/R/M click: scatter, treat, yarn; double click: laser"

type windowOptions struct {
	maxTicks    int
	sound       bool
	demoWindows bool
}

// window owns the raylib front-end: renderers, panels and input polling.
type window struct {
	g      *game.Game
	width  int32
	height int32

	background *renderer.BackgroundRenderer
	cats       *renderer.CatRenderer
	heat       *renderer.HeatmapRenderer
	particles  *renderer.ParticleRenderer
	clicks     *renderer.ClickRenderer

	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	perf      *ui.PerfPanel
	inspector *ui.Inspector
	controls  *ui.ControlsPanel
	colony    *ui.ColonyStatsPanel
	modePanel *ui.ModePanel

	sounds   *audio.SoundManager
	demo     bool
	windows  []systems.DesktopWindow
	drawn    []game.RenderCat
	lastMode mode.Mode
	gifts    int
}

func runWindow(opts game.Options, wo windowOptions) {
	cfg := opts.Config
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, "Clowder")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	w := &window{
		g:          g,
		width:      width,
		height:     height,
		background: renderer.NewBackgroundRenderer(58, 50, 44),
		cats:       renderer.NewCatRenderer(),
		heat:       renderer.NewHeatmapRenderer(),
		particles:  renderer.NewParticleRenderer(),
		clicks:     renderer.NewClickRenderer(cfg.Click.TreatLifetime),
		overlays:   ui.NewOverlayRegistry(),
		hud:        ui.NewHUD(),
		perf:       ui.NewPerfPanel(width-250, 16),
		inspector:  ui.NewInspector(10, 100, 220),
		controls:   ui.NewControlsPanel(10, 100, 220),
		colony:     ui.NewColonyStatsPanel(width-200, height-200, 190),
		modePanel:  ui.NewModePanel(10, height-140, max(cfg.Population.Target*3, 100)),
		sounds:     audio.NewSoundManager(0.5),
		demo:       wo.demoWindows,
		lastMode:   g.Modes().Mode(),
		gifts:      g.GiftsDelivered(),
	}
	if wo.sound {
		if err := w.sounds.Initialize(); err != nil {
			slog.Warn("audio_unavailable", "error", err)
		}
	}
	defer w.sounds.Cleanup()

	for !rl.WindowShouldClose() {
		w.frame()
		if wo.maxTicks > 0 && int(g.TickCount()) >= wo.maxTicks {
			break
		}
	}
	g.LogColony()
}

// frame polls input, advances the game and draws one frame.
func (w *window) frame() {
	g := w.g
	w.resize()

	keyActive := w.handleKeys()
	g.Heatmap().SetEnabled(w.overlays.IsEnabled(ui.OverlayHeatmap))

	mouse := rl.GetMousePosition()
	overPanel := w.overPanel(mouse)
	dt := rl.GetFrameTime()
	g.Update(float64(dt), game.FrameInput{
		ScreenW:    float32(w.width),
		ScreenH:    float32(w.height),
		CursorX:    mouse.X,
		CursorY:    mouse.Y,
		LeftDown:   !overPanel && rl.IsMouseButtonDown(rl.MouseButtonLeft),
		RightDown:  !overPanel && rl.IsMouseButtonDown(rl.MouseButtonRight),
		MiddleDown: !overPanel && rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		KeyActive:  keyActive,
		Now:        time.Now(),
		Windows:    w.windows,
	})

	w.particles.Emit(g.FrameBounces())
	w.particles.Update(dt)
	w.playCues()

	rl.BeginDrawing()
	w.draw(mouse)
	rl.EndDrawing()
}

func (w *window) resize() {
	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if width == w.width && height == w.height && w.windows != nil {
		return
	}
	w.width, w.height = width, height
	w.perf.SetPosition(width-250, 16)
	w.colony.SetPosition(width-200, height-200)
	w.modePanel.SetPosition(10, height-140)
	w.windows = w.windows[:0]
	if w.demo {
		w.windows = demoWindows(float32(width), float32(height))
	} else if w.windows == nil {
		w.windows = []systems.DesktopWindow{}
	}
}

// demoWindows lays out two perchable windows relative to the screen.
func demoWindows(width, height float32) []systems.DesktopWindow {
	return []systems.DesktopWindow{
		{Left: width * 0.12, Top: height * 0.35, Right: width * 0.38, Bottom: height * 0.6},
		{Left: width * 0.58, Top: height * 0.22, Right: width * 0.86, Bottom: height * 0.5},
	}
}

// handleKeys applies key presses and reports whether any key was pressed.
func (w *window) handleKeys() bool {
	active := false
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		active = true
		switch key {
		case rl.KeyF11:
			w.g.CycleMode()
		case rl.KeySpace:
			w.g.SetPaused(!w.g.Paused())
		case rl.KeyTab:
			w.controls.Toggle()
		default:
			if id, on, ok := w.overlays.HandleKeyPress(key); ok {
				slog.Info("overlay_toggled", "overlay", string(id), "enabled", on)
			}
		}
	}

	switch {
	case w.overlays.IsEnabled(ui.OverlayStateColors):
		w.cats.Mode = renderer.ColorState
	case w.overlays.IsEnabled(ui.OverlayTraitColors):
		w.cats.Mode = renderer.ColorTrait
	default:
		w.cats.Mode = renderer.ColorCoat
	}
	return active
}

func (w *window) overPanel(p rl.Vector2) bool {
	panel := rl.Rectangle{X: 10, Y: float32(w.height - 140), Width: float32(w.modePanel.Width()), Height: 104}
	return rl.CheckCollisionPointRec(p, panel)
}

func (w *window) playCues() {
	g := w.g
	w.sounds.Landing(g.FrameBounces())
	if n := g.GiftsDelivered(); n > w.gifts {
		w.sounds.Play(audio.CueChirp, 1)
		w.gifts = n
	}
	if m := g.Modes().Mode(); m != w.lastMode {
		w.sounds.Play(audio.CueMeow, 1)
		w.lastMode = m
	}
}

func (w *window) draw(mouse rl.Vector2) {
	g := w.g
	tint := mode.TintAt(mode.Hour(time.Now()))
	simTime := float32(g.SimTime())

	w.background.Draw(w.width, w.height, tint, w.windows)
	if w.overlays.IsEnabled(ui.OverlayHeatmap) {
		w.heat.Draw(g.Heatmap(), w.width, w.height)
	}
	w.clicks.Draw(g.Click(), mouse.X, mouse.Y, simTime)
	w.clicks.DrawYarn(g.Yarn().Balls)

	w.drawn = g.RenderCats(w.drawn)
	w.cats.Draw(w.drawn, tint, simTime)
	w.particles.Draw()

	modes := g.Modes()
	w.hud.Draw(ui.HUDData{
		Title:       "Clowder",
		Cats:        g.CatCount(),
		Target:      g.TargetPopulation(),
		Mode:        modes.Mode().String(),
		AFK:         modes.AFKActive(),
		BonusCats:   modes.BonusSpawned(),
		IdleSeconds: g.IdleSeconds(),
		Tick:        g.TickCount(),
		SimTime:     g.SimTime(),
		FPS:         rl.GetFPS(),
		Paused:      g.Paused(),
		Gifts:       g.GiftsDelivered(),
		EnergyMod:   g.EnergyModifier(),
	})

	if info, ok := g.CatAt(mouse.X, mouse.Y); ok {
		if w.overlays.IsEnabled(ui.OverlayNames) {
			w.hud.DrawCatLabel(info.X, info.Y, info.Name)
		}
		if w.overlays.IsEnabled(ui.OverlayInspector) && !w.controls.IsVisible() {
			w.inspector.Draw(info)
		}
	}

	w.controls.Draw(w.overlays)
	if w.overlays.IsEnabled(ui.OverlayPerf) {
		w.perf.Draw(g.PerfStats(), g.Registry())
	}
	if w.overlays.IsEnabled(ui.OverlayColonyStats) {
		w.colony.Draw(g.Stats())
	}
	w.modePanel.Draw(g, w.overlays)
	w.hud.DrawControls(w.height, controlsHelp)
}
