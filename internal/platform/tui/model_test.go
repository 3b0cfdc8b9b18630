package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// fakeGame records what the platform feeds it.
type fakeGame struct {
	resets  int
	resized [2]int
	frames  []core.InputFrame
	deltas  []time.Duration
	state   core.GameState
	summary core.RunSummary
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Summary() core.RunSummary { return g.summary }
func (g *fakeGame) Resize(width, height int) { g.resized = [2]int{width, height} }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) Step(core.InputFrame) core.StepResult { panic("StepDelta expected") }

func (g *fakeGame) StepDelta(in core.InputFrame, dt time.Duration) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.deltas = append(g.deltas, dt)
	return core.StepResult{State: g.state}
}

func newTestModel(g *fakeGame, store *storage.Store) Model {
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 50, Seed: 1})
	m.Init()
	return m
}

func asModel(t *testing.T, next tea.Model) Model {
	t.Helper()
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("model is %T", next)
	}
	return got
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return asModel(t, next)
}

func press(t *testing.T, m Model, msg tea.KeyMsg, now time.Time) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.handleKey(msg, now)
	return asModel(t, next), cmd
}

func TestModelMeasuredDelta(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)
	t0 := time.Unix(1000, 0)

	m = update(t, m, TickMsg(t0))
	m = update(t, m, TickMsg(t0.Add(35*time.Millisecond)))
	m = update(t, m, TickMsg(t0.Add(2*time.Second)))

	want := []time.Duration{20 * time.Millisecond, 35 * time.Millisecond, maxFrameDelta}
	if len(g.deltas) != len(want) {
		t.Fatalf("got %d steps, expected %d", len(g.deltas), len(want))
	}
	for i, dt := range want {
		if g.deltas[i] != dt {
			t.Errorf("step %d dt = %v, expected %v", i, g.deltas[i], dt)
		}
	}
}

func TestModelHeldAndEdgeInput(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)
	now := time.Now()

	m, _ = press(t, m, runeKey('d'), now)
	m, _ = press(t, m, runeKey('p'), now)
	m = update(t, m, TickMsg(now.Add(10*time.Millisecond)))
	m = update(t, m, TickMsg(now.Add(30*time.Millisecond)))

	first, second := g.frames[0], g.frames[1]
	if !first.Has(core.ActionRight) || !first.Has(core.ActionPause) {
		t.Error("first tick should carry the held move and the pause press")
	}
	if !second.Has(core.ActionRight) {
		t.Error("move should stay held between key repeats")
	}
	if second.Has(core.ActionPause) {
		t.Error("pause is a one-shot action")
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := newTestModel(g, store).WithPlayer("alice")
	g.state = core.GameState{Score: 400, GameOver: true, Victory: true}
	g.summary = core.RunSummary{Variant: "sniper", Score: 400, Victory: true, Duration: 42 * time.Second}

	now := time.Now()
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(20*time.Millisecond)))

	high, err := store.HighScore("fake")
	if err != nil || high != 400 {
		t.Errorf("HighScore() = %d, %v; expected 400", high, err)
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one run, got %d", len(runs))
	}
	r := runs[0]
	if r.Player != "alice" || r.Variant != "sniper" || r.Outcome != storage.OutcomeVictory || r.Duration != 42*time.Second {
		t.Errorf("unexpected run %+v", r)
	}

	// Restart resets the game and allows the next result to be saved
	m, _ = press(t, m, runeKey('r'), now)
	m = update(t, m, TickMsg(now.Add(40*time.Millisecond)))
	if g.resets != 2 || m.scoreSaved {
		t.Errorf("restart should reset the game (resets=%d, saved=%v)", g.resets, m.scoreSaved)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	// Esc while running pauses instead of leaving
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, time.Now())
	if m.BackToMenu() || !m.edges.Has(core.ActionPause) {
		t.Error("esc during play should request pause")
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg(time.Now()))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, time.Now())
	if !m.BackToMenu() || cmd != nil {
		t.Error("esc after game over should go back without quitting an embedded model")
	}

	m, cmd = press(t, m, runeKey('q'), time.Now())
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResizeFollowsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("Resize got %v", g.resized)
	}
	if g.resets != 1 {
		t.Error("resizable games should not be reset")
	}
	if !strings.Contains(m.View(), "fake") {
		t.Error("View should render the game")
	}
}
