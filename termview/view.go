// Package termview draws the colony in a terminal with tcell. Each cell
// covers a block of simulation pixels.
package termview

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/systems"
)

// Rows reserved at the bottom for the status line.
const statusRows = 1

var stateGlyphs = [...]rune{
	components.Idle:          'c',
	components.Walking:       'c',
	components.Running:       'C',
	components.Sleeping:      'z',
	components.Grooming:      '~',
	components.ChasingMouse:  '>',
	components.FleeingCursor: '!',
	components.ChasingCat:    '>',
	components.Playing:       '*',
	components.Zoomies:       '%',
	components.Startled:      '!',
	components.Yawning:       'o',
	components.Parading:      '=',
	components.Pouncing:      '^',
}

// Glyph returns the rune drawn for a cat in state s.
func Glyph(s components.BehaviorState) rune {
	if int(s) < len(stateGlyphs) {
		return stateGlyphs[s]
	}
	return '?'
}

// Frame is everything one terminal frame shows.
type Frame struct {
	Cats        []game.RenderCat
	Heatmap     *systems.Heatmap // nil hides the heat field
	Treats      []systems.Treat
	Yarn        []systems.YarnBall
	CursorX     float32
	CursorY     float32
	SimW, SimH  float32
	Mode        string
	AFK         bool
	Paused      bool
	Tick        int32
	Target      int
	StatusExtra string
}

// Viewer renders frames onto a tcell screen.
type Viewer struct {
	screen tcell.Screen
	bg     tcell.Style
	status tcell.Style
}

// New creates a viewer on an initialized screen.
func New(screen tcell.Screen) *Viewer {
	return &Viewer{
		screen: screen,
		bg:     tcell.StyleDefault.Background(tcell.NewRGBColor(24, 20, 18)),
		status: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWheat),
	}
}

// Grid returns the drawable area in cells, excluding the status line.
func (v *Viewer) Grid() (cols, rows int) {
	w, h := v.screen.Size()
	return w, max(h-statusRows, 1)
}

// Project maps a simulation point onto a cell of a cols x rows grid. ok is
// false for points outside the simulation area.
func Project(x, y, simW, simH float32, cols, rows int) (cx, cy int, ok bool) {
	if simW <= 0 || simH <= 0 || x < 0 || y < 0 || x >= simW || y >= simH {
		return 0, 0, false
	}
	cx = int(x / simW * float32(cols))
	cy = int(y / simH * float32(rows))
	return min(cx, cols-1), min(cy, rows-1), true
}

// Unproject maps a cell back to the simulation point at its center.
func Unproject(cx, cy int, simW, simH float32, cols, rows int) (x, y float32) {
	x = (float32(cx) + 0.5) / float32(max(cols, 1)) * simW
	y = (float32(cy) + 0.5) / float32(max(rows, 1)) * simH
	return x, y
}

// Draw renders f and shows the screen.
func (v *Viewer) Draw(f *Frame) {
	v.screen.SetStyle(v.bg)
	v.screen.Clear()
	cols, rows := v.Grid()

	if f.Heatmap != nil {
		v.drawHeat(f, cols, rows)
	}

	for _, t := range f.Treats {
		if cx, cy, ok := Project(t.X, t.Y, f.SimW, f.SimH, cols, rows); ok {
			v.screen.SetContent(cx, cy, '.', nil, v.bg.Foreground(tcell.ColorSandyBrown))
		}
	}

	for _, b := range f.Yarn {
		if cx, cy, ok := Project(b.X, b.Y, f.SimW, f.SimH, cols, rows); ok {
			v.screen.SetContent(cx, cy, '@', nil, v.bg.Foreground(tcell.ColorHotPink))
		}
	}

	for i := range f.Cats {
		c := &f.Cats[i]
		cx, cy, ok := Project(c.X, c.Y, f.SimW, f.SimH, cols, rows)
		if !ok {
			continue
		}
		r, g, b := uint8(c.Color>>24), uint8(c.Color>>16), uint8(c.Color>>8)
		style := v.bg.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		if c.Stacked {
			style = style.Bold(true)
		}
		v.screen.SetContent(cx, cy, Glyph(c.State), nil, style)
	}

	if cx, cy, ok := Project(f.CursorX, f.CursorY, f.SimW, f.SimH, cols, rows); ok {
		mainc, _, _, _ := v.screen.GetContent(cx, cy)
		v.screen.SetContent(cx, cy, mainc, nil, v.bg.Reverse(true))
	}

	v.drawStatus(f, cols, rows)
	v.screen.Show()
}

func (v *Viewer) drawHeat(f *Frame, cols, rows int) {
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x, y := Unproject(cx, cy, f.SimW, f.SimH, cols, rows)
			heat := f.Heatmap.Sample(x, y)
			if heat < 0.05 {
				continue
			}
			shade := int32(40 + heat*150)
			v.screen.SetContent(cx, cy, ' ', nil, v.bg.Background(tcell.NewRGBColor(shade, 24, 18)))
		}
	}
}

func (v *Viewer) drawStatus(f *Frame, cols, rows int) {
	state := "running"
	switch {
	case f.Paused:
		state = "paused"
	case f.AFK:
		state = "afk"
	}
	line := fmt.Sprintf(" clowder | %s | %s cats / %s | tick %s | %s | m:mode h:heat space:pause +/-:target q:quit %s",
		f.Mode, humanize.Comma(int64(len(f.Cats))), humanize.Comma(int64(f.Target)),
		humanize.Comma(int64(f.Tick)), state, f.StatusExtra)

	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, rows, r, nil, v.status)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, rows, ' ', nil, v.status)
	}
}
