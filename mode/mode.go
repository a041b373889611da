// Package mode holds the user-facing activity modes, AFK escalation and the
// day/night energy curve.
package mode

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/clowder/config"
)

// Mode selects how busy the cats are relative to the user.
type Mode uint8

const (
	Work Mode = iota
	Play
	Zen
	Chaos
	modeCount
)

var modeNames = [...]string{
	Work:  "Work",
	Play:  "Play",
	Zen:   "Zen",
	Chaos: "Chaos",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "Unknown"
}

// Next returns the mode after m, wrapping from Chaos back to Work.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// All returns every mode in cycle order.
func All() []Mode {
	return []Mode{Work, Play, Zen, Chaos}
}

// Parse converts a case-insensitive mode name.
func Parse(s string) (Mode, error) {
	for m := Mode(0); m < modeCount; m++ {
		if strings.EqualFold(s, modeNames[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func preset(p *config.PresetsConfig, m Mode) config.PresetConfig {
	switch m {
	case Work:
		return p.Work
	case Zen:
		return p.Zen
	case Chaos:
		return p.Chaos
	default:
		return p.Play
	}
}
