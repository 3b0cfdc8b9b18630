package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	flagConfigInit    bool
	flagConfigForce   bool
	flagConfigDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the rules file",
	Long: `Print the rules a match would use, after the config search and the
difficulty preset are applied.

Config search order:
  --config <path>
  ~/.tanks/configs/tanks.yaml
  ./configs/tanks.yaml
  built-in defaults

Examples:
  tanks config
  tanks config --difficulty hard
  tanks config --default > my-tanks.yaml
  tanks config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	addRulesFlags(configCmd)
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default rules to ~/.tanks/configs/tanks.yaml")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file with --init")
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	switch {
	case flagConfigInit:
		path := config.UserConfigPath()
		if err := config.WriteDefault(path, flagConfigForce); err != nil {
			return err
		}
		logger.Info("config written", "path", path)
		fmt.Printf("Wrote %s\n", path)
		return nil
	case flagConfigDefault:
		_, err := os.Stdout.Write(config.DefaultYAML(tanks.GameID))
		return err
	}

	if err := applyRules(); err != nil {
		return err
	}
	rules, err := tanks.LoadConfig()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(rules); err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	return enc.Close()
}
