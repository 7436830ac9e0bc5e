package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gunjam/internal/core"
)

// DefaultHoldWindow is how long an action stays held after its last key
// press or auto-repeat.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// Terminals report presses and repeats but never releases, so the mapper
// keeps movement, aim and fire held for a short window after each one.
type KeyMapper struct {
	holdWindow time.Duration
	lastSeen   map[core.Action]time.Time
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		holdWindow: DefaultHoldWindow,
		lastSeen:   make(map[core.Action]time.Time),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ", "space":
		return core.ActionJump, false
	case "j", "f":
		return core.ActionFire, false
	case "r":
		return core.ActionReload, false
	case "e", "enter":
		return core.ActionRepair, false
	case "1":
		return core.ActionChoice1, false
	case "2":
		return core.ActionChoice2, false
	case "3":
		return core.ActionChoice3, false
	case "p", "esc":
		return core.ActionPause, false
	case "n":
		return core.ActionRestart, false
	case "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// Press records a key press into frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action == core.ActionNone {
		return isQuit
	}
	frame.Set(action)

	if opposite, ok := holdable[action]; ok {
		km.lastSeen[action] = now
		delete(km.lastSeen, opposite)
	}
	return isQuit
}

// Hold marks every action pressed within the hold window as held in frame.
func (km *KeyMapper) Hold(now time.Time, frame *core.InputFrame) {
	for a, seen := range km.lastSeen {
		if now.Sub(seen) > km.holdWindow {
			delete(km.lastSeen, a)
			continue
		}
		frame.Hold(a)
	}
}

// Release forgets all held actions.
func (km *KeyMapper) Release() {
	clear(km.lastSeen)
}

// holdable maps each held action to the one it cancels.
var holdable = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionFire:  core.ActionNone,
}
