// tanks is a top-down tank battle played in the terminal.
//
// Usage:
//
//	tanks list              - List available games
//	tanks play              - Play a match
//	tanks menu              - Pick a class interactively, play, repeat
//	tanks serve             - Start SSH server for remote play
//	tanks scores            - Show the best runs
//	tanks sim               - Run headless matches and print the results
//	tanks config            - Show or create the rules file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tanks/scores.db)
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logFile is the open --log-file, closed after the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tanks - Defend your base in the terminal",
	Long: `Tanks is a top-down tank battle for the terminal. Guard the eagle,
destroy every enemy tank and pick the class that fits your style.

Available commands:
  list     - Show all available games
  play     - Play a match directly
  menu     - Interactive class picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Run headless matches
  config   - Show or create the rules file

Examples:
  tanks play --class sniper
  tanks menu
  tanks serve --ssh :2222
  tanks sim --runs 8 --duration 2m`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// interactive commands own the terminal, so they only log to --log-file.
var interactive = map[string]bool{
	"play": true,
	"menu": true,
}

// logger is the process logger built from the global flags.
var logger = log.New(io.Discard)

func setupLogging(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case interactive[cmd.Name()]:
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks",
		Level:           level,
	})
	tanks.SetLogger(logger.WithPrefix("engine"))
	tui.SetLogger(logger.WithPrefix("tui"))
	return nil
}
