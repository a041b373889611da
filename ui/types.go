// Package ui provides a descriptor-driven UI for the colony window.
// Panels are built from field metadata so that the inspector follows the
// component definitions instead of hard-coding labels.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/game"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Range       FieldRange         // Value range for bars
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PersonalitySection builds the inspector section for a game.CatInfo from
// the component metadata.
func PersonalitySection() SectionDescriptor {
	meta := components.PersonalityFieldDescriptors()
	fields := make([]FieldDescriptor, 0, len(meta))
	for _, m := range meta {
		id := m.ID
		fd := FieldDescriptor{
			ID:     id,
			Label:  m.Label,
			Format: m.Format,
			Range:  FieldRange{Min: m.Min, Max: m.Max},
			Getter: func(data any) float32 {
				info, ok := data.(game.CatInfo)
				if !ok {
					return 0
				}
				return info.Personality.FieldValue(id)
			},
		}
		if m.IsBar {
			fd.Widget = WidgetBar
		}
		fields = append(fields, fd)
	}
	return SectionDescriptor{ID: "personality", Title: "Personality", Fields: fields}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 28, G: 24, B: 22, A: 230},
		PanelBorder:    rl.Color{R: 90, G: 78, B: 66, A: 255},
		SectionHeader:  rl.Color{R: 255, G: 200, B: 120, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 50, G: 44, B: 40, A: 255},
		BarFill:        rl.Color{R: 230, G: 150, B: 70, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     64,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
