package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", runeKey(' '), core.ActionFire, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if got != tc.want || quit != tc.isQuit {
				t.Errorf("MapKey(%q) = (%s, %v), expected (%s, %v)", tc.msg.String(), got, quit, tc.want, tc.isQuit)
			}
		})
	}
}

func TestKeyMapperMenuActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.msg.String(), got, tc.want)
		}
	}
}

func TestHoldTrackerWindows(t *testing.T) {
	h := NewHoldTracker(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(core.ActionUp, t0)
	if !h.Held(core.ActionUp, t0.Add(499*time.Millisecond)) {
		t.Error("first press should hold through the initial window")
	}
	if h.Held(core.ActionUp, t0.Add(500*time.Millisecond)) {
		t.Error("first press should expire after the initial window")
	}

	// A repeat inside the window extends by the shorter repeat window
	h.Press(core.ActionUp, t0)
	h.Press(core.ActionUp, t0.Add(400*time.Millisecond))
	if !h.Held(core.ActionUp, t0.Add(450*time.Millisecond)) {
		t.Error("repeat should keep the key held")
	}
	if h.Held(core.ActionUp, t0.Add(500*time.Millisecond)) {
		t.Error("repeat should only extend by the repeat window")
	}
}

func TestHoldTrackerDirectionSwitch(t *testing.T) {
	h := DefaultHoldTracker()
	now := time.Unix(100, 0)

	h.Press(core.ActionUp, now)
	h.Press(core.ActionFire, now)
	h.Press(core.ActionLeft, now.Add(10*time.Millisecond))

	later := now.Add(20 * time.Millisecond)
	if h.Held(core.ActionUp, later) {
		t.Error("a new direction should release the previous one")
	}
	if !h.Held(core.ActionLeft, later) || !h.Held(core.ActionFire, later) {
		t.Error("new direction and fire should both be held")
	}

	// One-shot actions are never tracked
	h.Press(core.ActionPause, later)
	if h.Held(core.ActionPause, later) {
		t.Error("pause should not be held")
	}
}

func TestHoldTrackerApply(t *testing.T) {
	h := DefaultHoldTracker()
	now := time.Unix(100, 0)
	h.Press(core.ActionRight, now)
	h.Press(core.ActionFire, now)

	frame := core.NewInputFrame()
	h.Apply(&frame, now.Add(time.Millisecond))
	if !frame.Has(core.ActionRight) || !frame.Has(core.ActionFire) {
		t.Error("held actions should be applied to the frame")
	}

	frame = core.NewInputFrame()
	h.Apply(&frame, now.Add(time.Second))
	if frame.Has(core.ActionRight) || frame.Has(core.ActionFire) {
		t.Error("expired actions should not be applied")
	}

	h.Press(core.ActionDown, now)
	h.Reset()
	if h.Held(core.ActionDown, now) {
		t.Error("Reset should release every key")
	}
}
