package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// maxFrameDelta caps the measured time between ticks so a stalled
// terminal does not teleport tanks.
const maxFrameDelta = 250 * time.Millisecond

// logger receives platform events; discarded unless SetLogger is called.
var logger = log.New(io.Discard)

// SetLogger routes platform events to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Model is the Bubble Tea model for running a game.
// It is used standalone by Run and embedded in SSH sessions.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	palette    *Palette
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	keyMapper  *KeyMapper
	holds      *HoldTracker
	edges      core.InputFrame // one-shot actions pressed since the last tick
	gameState  core.GameState
	lastTick   time.Time
	quitOnBack bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:   RenderPalette(),
		store:     store,
		config:    cfg,
		player:    "local",
		keyMapper: NewKeyMapper(),
		holds:     DefaultHoldTracker(),
		edges:     core.NewInputFrame(),
	}
}

// RenderPalette returns the process-wide palette.
func RenderPalette() *Palette {
	return defaultPalette()
}

// WithPalette returns a copy of m that renders with p.
func (m Model) WithPalette(p *Palette) Model {
	if p != nil {
		m.palette = p
	}
	return m
}

// WithPlayer returns a copy of m that records runs under name.
func (m Model) WithPlayer(name string) Model {
	if name != "" {
		m.player = name
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	case action == core.ActionBack:
		// Esc pauses a running match
		m.edges.Set(core.ActionPause)
	case IsHeld(action):
		m.holds.Press(action, now)
	case action != core.ActionNone:
		m.edges.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot follow a resize start over
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// frameDelta returns the time since the previous tick, capped.
func (m *Model) frameDelta(now time.Time) time.Duration {
	nominal := tickInterval(m.config.TickRate)
	if m.lastTick.IsZero() {
		m.lastTick = now
		return nominal
	}

	dt := now.Sub(m.lastTick)
	m.lastTick = now
	if dt <= 0 {
		return nominal
	}
	return min(dt, maxFrameDelta)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.frameDelta(now)

	if m.edges.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.holds.Reset()
		m.edges.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	frame := m.edges.Clone()
	m.holds.Apply(&frame, now)

	var result core.StepResult
	if timed, ok := m.game.(registry.TimedGame); ok {
		result = timed.StepDelta(frame, dt)
	} else {
		result = m.game.Step(frame)
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordResult()
		m.scoreSaved = true
	}

	m.edges.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordResult stores the finished match. Failures are logged; the game
// carries on without persistence.
func (m *Model) recordResult() {
	if m.store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}

	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	outcome := storage.OutcomeDefeat
	if sum.Victory {
		outcome = storage.OutcomeVictory
	}

	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:   m.game.ID(),
		Player:   m.player,
		Variant:  sum.Variant,
		Score:    sum.Score,
		Outcome:  outcome,
		Duration: sum.Duration,
	})
	if err != nil {
		logger.Warn("could not save run", "game", m.game.ID(), "error", err)
		return
	}
	logger.Debug("run saved", "run", id, "player", m.player, "variant", sum.Variant,
		"score", sum.Score, "outcome", outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".tanks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("could not save screenshot", "error", err)
		return
	}
	logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// It returns true when the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
