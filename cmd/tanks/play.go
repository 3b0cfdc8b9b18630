package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagClass      string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a match with the chosen tank class.

Controls:
  WASD/Arrows - Move
  Space       - Fire
  P/Esc       - Pause
  R           - Restart (after the match ends)
  B/Esc       - Leave (while paused or after the match ends)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Classes:
  ranger  - Fast tracks and rapid fire
  sniper  - Slow, but shells pierce two brick layers
  samurai - Reflects an incoming shell every 5 seconds

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tanks play
  tanks play --class sniper
  tanks play --class samurai --difficulty hard
  tanks play --config ./my-tanks.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addRulesFlags(playCmd)
	playCmd.Flags().StringVar(&flagClass, "class", "ranger", "Tank class: ranger, sniper, samurai")
}

// addRulesFlags registers the flags that pick the rules file and preset.
func addRulesFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyRules hands the rules flags to the game and checks the result loads.
func applyRules() error {
	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(flagDifficulty)
	if _, err := tanks.LoadConfig(); err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database; play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := tanks.SetClass(flagClass); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available classes.")
		os.Exit(1)
	}

	if err := applyRules(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(tanks.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()
	store := openStore()

	logger.Info("match starting", "class", flagClass, "seed", cfg.Seed, "fps", cfg.TickRate)
	_, runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
