package tanks

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// GameID is the registry and storage identifier of the game.
const GameID = "tanks"

// HUD layout
const (
	hudRows     = 2
	BorderHoriz = '─'
	minScreenW  = 40
	minScreenH  = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// defaultClass is the class used by registry-created games
var defaultClass = ClassRanger

// logger receives engine events; discarded unless SetLogger is called
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetClass sets the class used by games created through the registry.
func SetClass(name string) error {
	c, err := ParseClass(name)
	if err != nil {
		return err
	}
	defaultClass = c
	return nil
}

// SetLogger routes engine events of new games to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig loads the configured rules with the CLI preset applied.
func LoadConfig() (config.TanksConfig, error) {
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyTanksPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Game adapts an Engine to the registry: it owns the session phases,
// maps platform actions onto the input source and draws the HUD.
type Game struct {
	class   Class
	runtime core.RuntimeConfig
	cfg     config.TanksConfig

	session *Session
	engine  *Engine
	surface *core.Screen
	paused  bool

	screenW        int
	screenH        int
	screenTooSmall bool
}

// New creates a game with the class chosen via SetClass.
func New() *Game {
	return NewWithClass(defaultClass)
}

// NewWithClass creates a game for a specific class.
func NewWithClass(c Class) *Game {
	return &Game{class: c, session: NewSession()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tanks"
}

// Reset loads the rules and starts a fresh match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig()
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultTanksConfig()
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.session = NewSession()
	if err := g.session.Begin(g.class, cfg.Player.Lives); err != nil {
		logger.Error("session", "err", err)
	}

	g.layout(runtime.ScreenW, runtime.ScreenH)
	g.startEngine()
}

func (g *Game) layout(w, h int) {
	g.screenW = w
	g.screenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
	if g.surface == nil {
		g.surface = core.NewScreen(w, core.Max(0, h-hudRows))
	} else {
		g.surface.Resize(w, core.Max(0, h-hudRows))
	}
}

func (g *Game) startEngine() {
	if g.engine != nil {
		g.engine.Destroy()
	}
	g.paused = false

	cb := Callbacks{
		OnScore: g.session.SetScore,
		OnLives: g.session.SetLives,
		OnGameOver: func() {
			if err := g.session.EndDefeat(); err != nil {
				logger.Warn("session", "err", err)
			}
		},
		OnVictory: func() {
			if err := g.session.EndVictory(); err != nil {
				logger.Warn("session", "err", err)
			}
		},
	}

	g.engine = NewEngine(g.surface, NewInput(), g.class, cb,
		WithConfig(g.cfg),
		WithSeed(g.runtime.Seed),
		WithLogger(logger),
	)
	g.engine.Start()
	g.engine.Render()
}

// Resize follows a terminal resize without restarting the match.
func (g *Game) Resize(w, h int) {
	g.layout(w, h)
	if g.engine != nil {
		g.engine.Resize(w, core.Max(0, h-hudRows))
		g.engine.Render()
	}
}

// Step advances one tick of nominal length.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return g.StepDelta(in, time.Second/time.Duration(rate))
}

// StepDelta advances one tick that lasted dt.
func (g *Game) StepDelta(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.session.Ended() {
		if err := g.session.Restart(g.cfg.Player.Lives); err != nil {
			logger.Warn("session", "err", err)
		}
		g.startEngine()
		return core.StepResult{State: g.State()}
	}

	if g.session.Phase() != PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.engine.Stop()
		} else {
			g.engine.Start()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	input := g.engine.Input()
	input.Set(KeyUp, in.Has(core.ActionUp))
	input.Set(KeyDown, in.Has(core.ActionDown))
	input.Set(KeyLeft, in.Has(core.ActionLeft))
	input.Set(KeyRight, in.Has(core.ActionRight))
	input.Set(KeyFire, in.Has(core.ActionFire))

	g.engine.Tick(dt)

	if g.session.Ended() {
		g.engine.Destroy()
	}

	return core.StepResult{State: g.State()}
}

// Render draws the HUD, the world view and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	if g.surface != nil {
		dst.Blit(g.surface, 0, hudRows)
	}
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.session.Score()))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.session.Lives()))

	right := fmt.Sprintf("Class: %s", g.class)
	if g.class.Stats().Reflect && g.engine != nil {
		if p := g.engine.ReflectProgress(); p >= 1 {
			right += "  Reflect: READY"
		} else {
			right += fmt.Sprintf("  Reflect: %3.0f%%", p*100)
		}
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)

	for x, n := 0, dst.Width(); x < n; x++ {
		dst.Set(x, 1, BorderHoriz)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.session.Phase() == PhaseGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score()))
	case g.session.Phase() == PhaseVictory:
		g.drawCenteredBox(dst, "VICTORY!", fmt.Sprintf("Score: %d  |  Press R to play again", g.session.Score()))
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Ended(),
		Victory:  g.session.Phase() == PhaseVictory,
		Paused:   g.paused,
		Lives:    g.session.Lives(),
	}
}

// Summary describes the current or last match.
func (g *Game) Summary() core.RunSummary {
	s := core.RunSummary{
		Variant: g.class.String(),
		Score:   g.session.Score(),
		Victory: g.session.Phase() == PhaseVictory,
	}
	if g.engine != nil {
		s.Duration = g.engine.Clock()
		s.Ticks = g.engine.Ticks()
	}
	return s
}

// Class returns the player's class.
func (g *Game) Class() Class {
	return g.class
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

var (
	_ registry.TimedGame  = (*Game)(nil)
	_ registry.Resizable  = (*Game)(nil)
	_ registry.Summarizer = (*Game)(nil)
)
