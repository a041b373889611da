package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/game"
	"github.com/pthm-cable/clowder/renderer"
)

// Inspector renders the panel for the cat under the cursor.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: []SectionDescriptor{statusSection(), PersonalitySection(), relationsSection()},
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for info and returns the bottom Y.
func (ins *Inspector) Draw(info game.CatInfo) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding*2 + 20
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, info)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(info.Name, x, y, 18, rl.White)
	y += 20

	for _, sd := range ins.sections {
		y = r.DrawSection(x, y, sd, info, ins.width-padding*2)
	}
	return y
}

func catInfo(data any) game.CatInfo {
	info, _ := data.(game.CatInfo)
	return info
}

func statusSection() SectionDescriptor {
	return SectionDescriptor{
		ID:    "status",
		Title: "Status",
		Fields: []FieldDescriptor{
			{
				ID:         "state",
				Label:      "State",
				Widget:     WidgetText,
				TextGetter: func(d any) string { return catInfo(d).State.String() },
			},
			{
				ID:          "state_color",
				Label:       "Color",
				Widget:      WidgetColorSwatch,
				ColorGetter: func(d any) rl.Color { return renderer.StateColor(catInfo(d).State) },
			},
			{
				ID:     "timer",
				Label:  "Timer",
				Widget: WidgetText,
				Format: "%.1fs",
				Getter: func(d any) float32 { return catInfo(d).Timer },
			},
			{
				ID:     "position",
				Label:  "Pos",
				Widget: WidgetText,
				TextGetter: func(d any) string {
					info := catInfo(d)
					return fmt.Sprintf("%.0f, %.0f", info.X, info.Y)
				},
			},
		},
	}
}

func relationsSection() SectionDescriptor {
	return SectionDescriptor{
		ID:    "relations",
		Title: "Colony",
		Visible: func(d any) bool {
			info := catInfo(d)
			return info.Stacked || info.InPile || info.HasGift
		},
		Fields: []FieldDescriptor{
			{
				ID:         "stacked",
				Label:      "Tower",
				Widget:     WidgetText,
				Visible:    func(d any) bool { return catInfo(d).Stacked },
				TextGetter: func(any) string { return "climbing" },
			},
			{
				ID:         "pile",
				Label:      "Pile",
				Widget:     WidgetText,
				Visible:    func(d any) bool { return catInfo(d).InPile },
				TextGetter: func(any) string { return "napping together" },
			},
			{
				ID:         "gift",
				Label:      "Gift",
				Widget:     WidgetText,
				Visible:    func(d any) bool { return catInfo(d).HasGift },
				TextGetter: func(any) string { return "carrying" },
			},
		},
	}
}
