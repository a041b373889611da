package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/systems"
	"github.com/pthm-cable/clowder/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Cats        int
	Target      int
	Mode        string
	AFK         bool
	BonusCats   int
	IdleSeconds float64
	Tick        int32
	SimTime     float64
	FPS         int32
	Paused      bool
	Gifts       int
	EnergyMod   float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Cats: %s / %s | Mode: %s | Gifts: %s",
			humanize.Comma(int64(data.Cats)), humanize.Comma(int64(data.Target)), data.Mode, humanize.Comma(int64(data.Gifts))),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %s | FPS: %d | Energy: x%.2f",
			data.Tick, (time.Duration(data.SimTime) * time.Second).String(), data.FPS, data.EnergyMod),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	color := rl.Yellow
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.AFK:
		status = fmt.Sprintf("AFK %.0fs (+%d cats)", data.IdleSeconds, data.BonusCats)
		color = rl.Orange
	}
	rl.DrawText(status, 10, 75, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawCatLabel draws a name tag above a cat.
func (h *HUD) DrawCatLabel(x, y float32, name string) {
	size := h.renderer.Theme.FontSize
	w := rl.MeasureText(name, size)
	px := int32(x) - w/2
	py := int32(y) - 28
	rl.DrawRectangle(px-3, py-2, w+6, size+4, h.renderer.Theme.PanelBg)
	rl.DrawText(name, px, py, size, h.renderer.Theme.ValueColor)
}

// PerfPanel renders the tick phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, phases in pipeline order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-6, y-6, 250, int32(len(stats.Phases))*14+58)

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Tick: %s (%s ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), humanize.Comma(int64(stats.TicksPerSecond))),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, id := range stats.Phases {
		pct := stats.PhasePct[id]

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		name := id
		if registry != nil {
			name = registry.GetName(id)
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %7s %5.1f%%", name, stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
