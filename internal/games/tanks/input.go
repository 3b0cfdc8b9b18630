package tanks

import (
	"strings"
	"sync"
)

// Key is a normalized control identifier.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	keyCount
)

// InputState is a level-triggered snapshot of the controls.
type InputState struct {
	Up, Down, Left, Right, Shoot bool
}

// Input holds the current held state of the controls. Key signals may come
// from a keyboard or any surface that synthesizes key down/up pairs.
// Only the held state is visible; presses are not queued.
type Input struct {
	mu       sync.Mutex
	held     [keyCount]bool
	detached bool
}

// NewInput creates an attached input source with nothing held.
func NewInput() *Input {
	return &Input{}
}

// KeyDown marks a key as held.
func (in *Input) KeyDown(k Key) {
	in.Set(k, true)
}

// KeyUp marks a key as released.
func (in *Input) KeyUp(k Key) {
	in.Set(k, false)
}

// Set updates the held state of a key. Signals after Detach are ignored.
func (in *Input) Set(k Key, down bool) {
	if k < 0 || k >= keyCount {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.detached {
		return
	}
	in.held[k] = down
}

// State returns the snapshot at query time.
func (in *Input) State() InputState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return InputState{
		Up:    in.held[KeyUp],
		Down:  in.held[KeyDown],
		Left:  in.held[KeyLeft],
		Right: in.held[KeyRight],
		Shoot: in.held[KeyFire],
	}
}

// Detach releases every key and stops accepting signals.
func (in *Input) Detach() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.detached = true
	in.held = [keyCount]bool{}
}

// Attached reports whether the source still accepts key signals.
func (in *Input) Attached() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return !in.detached
}

// ParseKey maps a raw key name (as reported by the terminal) to a Key.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "w", "up":
		return KeyUp, true
	case "s", "down":
		return KeyDown, true
	case "a", "left":
		return KeyLeft, true
	case "d", "right":
		return KeyRight, true
	case " ", "space":
		return KeyFire, true
	}
	return 0, false
}
