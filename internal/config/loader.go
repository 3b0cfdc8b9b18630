package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadTanks loads the tank game configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides what it names.
func LoadTanks(customPath string) (TanksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTanksConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTanks(data)
		if err != nil {
			return DefaultTanksConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tanks.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTanks(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tanks.yaml")); err == nil {
		if cfg, err := parseTanks(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTanks(defaultTanksYAML)
	if err != nil {
		return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseTanks(data []byte) (TanksConfig, error) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a match.
func (c TanksConfig) Validate() error {
	switch {
	case c.Player.Lives <= 0:
		return fmt.Errorf("%w: player.lives must be positive, got %d", ErrInvalidConfig, c.Player.Lives)
	case c.Enemies.SpawnDelayMs <= 0:
		return fmt.Errorf("%w: enemies.spawn_delay_ms must be positive, got %d", ErrInvalidConfig, c.Enemies.SpawnDelayMs)
	case c.Enemies.MaxActive < 0 || c.Enemies.Initial < 0:
		return fmt.Errorf("%w: enemy counts must not be negative", ErrInvalidConfig)
	case c.Enemies.FireChance < 0 || c.Enemies.FireChance > 1:
		return fmt.Errorf("%w: enemies.fire_chance must be in [0, 1], got %v", ErrInvalidConfig, c.Enemies.FireChance)
	case c.Enemies.RetargetMinMs <= 0 || c.Enemies.RetargetMaxMs < c.Enemies.RetargetMinMs:
		return fmt.Errorf("%w: enemies retarget window [%d, %d] is empty", ErrInvalidConfig,
			c.Enemies.RetargetMinMs, c.Enemies.RetargetMaxMs)
	case len(c.Enemies.SpawnPoints) == 0:
		return fmt.Errorf("%w: enemies.spawn_points must not be empty", ErrInvalidConfig)
	case c.Render.CellWidthPx <= 0 || c.Render.CellHeightPx <= 0:
		return fmt.Errorf("%w: render cell size must be positive", ErrInvalidConfig)
	}
	return nil
}

// UserConfigPath returns where `tanks config --init` writes, or "" without a home directory.
func UserConfigPath() string {
	return userConfigPath("tanks.yaml")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// WriteDefault writes the embedded tanks.yaml to path, creating parent
// directories. An existing file is kept unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if path == "" {
		return errors.New("no config path")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, DefaultYAML("tanks"), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
// "normal" keeps the configured rules untouched.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		cfg.Player.Lives = 5
		cfg.Enemies.FireChance = 0.01
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		cfg.Player.Lives = 2
		cfg.Enemies.FireChance = 0.04
		cfg.Enemies.MaxActive = 6
	}
}
