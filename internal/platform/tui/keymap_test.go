package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gunjam/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a walks left", runeKey('a'), core.ActionLeft, false},
		{"arrow walks right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w aims up", runeKey('w'), core.ActionUp, false},
		{"arrow aims down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"j fires", runeKey('j'), core.ActionFire, false},
		{"f fires", runeKey('f'), core.ActionFire, false},
		{"r reloads", runeKey('r'), core.ActionReload, false},
		{"e repairs", runeKey('e'), core.ActionRepair, false},
		{"enter repairs", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRepair, false},
		{"2 picks a card", runeKey('2'), core.ActionChoice2, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"n restarts", runeKey('n'), core.ActionRestart, false},
		{"b goes back", runeKey('b'), core.ActionBack, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = %v, %v; want %v, %v", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestKeyMapperHoldWindow(t *testing.T) {
	km := NewKeyMapper()
	base := time.Unix(100, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey('j'), base, &frame)
	if !frame.FireJustPressed() {
		t.Fatal("press should set the fire edge")
	}

	frame.Clear()
	km.Hold(base.Add(DefaultHoldWindow/2), &frame)
	if !frame.FirePressed() {
		t.Error("fire should still be held inside the window")
	}
	if frame.FireJustPressed() {
		t.Error("a held key must not repeat the edge")
	}

	frame.Clear()
	km.Hold(base.Add(2*DefaultHoldWindow), &frame)
	if frame.FirePressed() {
		t.Error("fire should be released after the window")
	}
}

func TestKeyMapperOppositeCancels(t *testing.T) {
	km := NewKeyMapper()
	now := time.Unix(100, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey('a'), now, &frame)
	km.Press(runeKey('d'), now, &frame)
	frame.Clear()
	km.Hold(now, &frame)

	if got := frame.MoveAxis(); got != 1 {
		t.Errorf("MoveAxis() = %v, want 1", got)
	}
}

func TestKeyMapperEdgeOnlyActions(t *testing.T) {
	km := NewKeyMapper()
	now := time.Unix(100, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey('r'), now, &frame)
	frame.Clear()
	km.Hold(now, &frame)

	if frame.IsHeld(core.ActionReload) {
		t.Error("reload should not be latched")
	}
}

func TestKeyMapperRelease(t *testing.T) {
	km := NewKeyMapper()
	now := time.Unix(100, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey('j'), now, &frame)
	km.Release()
	frame.Clear()
	km.Hold(now, &frame)

	if frame.FirePressed() {
		t.Error("Release should drop held actions")
	}
}
