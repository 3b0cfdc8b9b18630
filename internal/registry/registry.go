// Package registry lets game packages announce themselves from init() so
// the commands can list and create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Game is what the terminal platform drives. Implementations stay free of
// Bubble Tea: the platform maps keys to actions, paces ticks and paints
// the screen buffer.
type Game interface {
	// ID is the stable key used on the command line and in the scores
	// database.
	ID() string
	Title() string

	// Reset starts a new match for the screen size and seed in cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick of nominal length.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// TimedGame consumes the measured delta between ticks. The platform
// prefers StepDelta over Step when it is available.
type TimedGame interface {
	Game
	StepDelta(in core.InputFrame, dt time.Duration) core.StepResult
}

// Resizable games follow a terminal resize without restarting the match.
type Resizable interface {
	Resize(width, height int)
}

// Summarizer describes a finished match for the run history.
type Summarizer interface {
	Summary() core.RunSummary
}

// GameInfo is a registered game as shown by `list`.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}
