package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionUp             // W, Up arrow - raise aim
	ActionDown           // S, Down arrow - lower aim
	ActionJump           // Space - jump
	ActionFire           // J, F - fire
	ActionReload         // R - reload
	ActionRepair         // E, Enter - stop the repair slider
	ActionChoice1        // 1 - first upgrade card
	ActionChoice2        // 2 - second upgrade card
	ActionChoice3        // 3 - third upgrade card
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // N - restart after game over
	ActionBack           // B - back to the gun picker
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionFire:
		return "Fire"
	case ActionReload:
		return "Reload"
	case ActionRepair:
		return "Repair"
	case ActionChoice1:
		return "Choice1"
	case ActionChoice2:
		return "Choice2"
	case ActionChoice3:
		return "Choice3"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputSource is the read side of player input as the simulation sees it.
type InputSource interface {
	FirePressed() bool
	FireJustPressed() bool
	ReloadJustPressed() bool
	RepairJustPressed() bool
	MoveAxis() float64
}

// InputFrame is the input state for one simulation tick.
// Actions holds edges (pressed this frame); Held holds levels (still down).
// Terminals only report key presses, so the platform keeps Held alive for a
// short window after each repeat.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
}

var _ InputSource = InputFrame{}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed this frame. A pressed action is also held.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Hold(a)
}

// Hold marks an action as held without a new press edge.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// IsHeld returns true if the action is down this frame.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Has(a) || (f.Held != nil && f.Held[a])
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}

func (f InputFrame) FirePressed() bool       { return f.IsHeld(ActionFire) }
func (f InputFrame) FireJustPressed() bool   { return f.Has(ActionFire) }
func (f InputFrame) ReloadJustPressed() bool { return f.Has(ActionReload) }
func (f InputFrame) RepairJustPressed() bool { return f.Has(ActionRepair) }

// MoveAxis returns -1, 0 or 1 from the held left/right actions.
func (f InputFrame) MoveAxis() float64 {
	axis := 0.0
	if f.IsHeld(ActionLeft) {
		axis--
	}
	if f.IsHeld(ActionRight) {
		axis++
	}
	return axis
}
