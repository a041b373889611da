package termview

import "github.com/gdamore/tcell/v2"

// Action is a keyboard command decoded from a terminal event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCycleMode
	ActionToggleHeat
	ActionTogglePause
	ActionGrow
	ActionShrink
)

// Input tracks the mouse between events. Cell positions are translated to
// simulation coordinates by the caller with Unproject.
type Input struct {
	CellX, CellY int
	LeftDown     bool
	RightDown    bool
	MiddleDown   bool
	Active       bool // a key or mouse event arrived since the last Reset
	Resized      bool
}

// Reset clears the per-frame flags.
func (in *Input) Reset() {
	in.Active = false
	in.Resized = false
}

// Handle folds ev into the input state and returns any command it carries.
func (in *Input) Handle(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in.Active = true
		return keyAction(ev)

	case *tcell.EventMouse:
		in.Active = true
		in.CellX, in.CellY = ev.Position()
		buttons := ev.Buttons()
		in.LeftDown = buttons&tcell.Button1 != 0
		in.RightDown = buttons&tcell.Button2 != 0
		in.MiddleDown = buttons&tcell.Button3 != 0

	case *tcell.EventResize:
		in.Resized = true
	}
	return ActionNone
}

func keyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case 'm', 'M':
			return ActionCycleMode
		case 'h', 'H':
			return ActionToggleHeat
		case ' ':
			return ActionTogglePause
		case '+', '=':
			return ActionGrow
		case '-', '_':
			return ActionShrink
		}
	}
	return ActionNone
}
