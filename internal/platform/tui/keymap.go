package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// IsHeld reports whether an action describes a key the player holds down
// (movement and fire) rather than a one-shot command.
func IsHeld(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	}
	return false
}

func isMove(a core.Action) bool {
	return a != core.ActionFire && IsHeld(a)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Hold windows used by DefaultHoldTracker. Terminals only report presses,
// so a key counts as held until its auto-repeat stops arriving. The first
// press has to outlast the terminal's repeat delay; later repeats come fast.
const (
	DefaultHoldInitial = 520 * time.Millisecond
	DefaultHoldRepeat  = 120 * time.Millisecond
)

// HoldTracker turns the press-only key events of a terminal into held
// key state.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	until   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker with the given hold windows.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		until:   make(map[core.Action]time.Time),
	}
}

// DefaultHoldTracker creates a tracker tuned for common terminal repeat rates.
func DefaultHoldTracker() *HoldTracker {
	return NewHoldTracker(DefaultHoldInitial, DefaultHoldRepeat)
}

// Press records a key event for a held action at time now.
// A movement press releases the other directions so turns apply at once.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	if !IsHeld(a) {
		return
	}

	window := h.initial
	if h.heldAt(a, now) {
		window = h.repeat
	}

	if isMove(a) {
		for other := range h.until {
			if other != a && isMove(other) {
				delete(h.until, other)
			}
		}
	}

	h.until[a] = now.Add(window)
}

func (h *HoldTracker) heldAt(a core.Action, now time.Time) bool {
	deadline, ok := h.until[a]
	return ok && now.Before(deadline)
}

// Held reports whether an action is still held at time now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	return h.heldAt(a, now)
}

// Apply sets every action still held at now into frame and forgets
// expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, deadline := range h.until {
		if now.Before(deadline) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
}

// Reset releases every key.
func (h *HoldTracker) Reset() {
	clear(h.until)
}
