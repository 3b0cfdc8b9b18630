package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default tank game configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Player: TanksPlayer{
			Lives: 3,
			Start: TilePoint{Col: 4, Row: 15},
		},
		Enemies: TanksEnemies{
			Class:          "ranger",
			Initial:        3,
			MaxActive:      4,
			SpawnDelayMs:   3000,
			VictoryGraceMs: 1000,
			SpeedFactor:    0.7,
			FireChance:     0.02,
			RetargetMinMs:  2000,
			RetargetMaxMs:  4000,
			KillScore:      100,
			SpawnPoints: []TilePoint{
				{Col: 1, Row: 1},
				{Col: 12, Row: 1},
				{Col: 23, Row: 1},
			},
		},
		Fog: TanksFog{
			Enabled:     true,
			RadiusTiles: 4,
		},
		Render: TanksRender{
			CellWidthPx:  16,
			CellHeightPx: 32,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:     0.3,
				FireMultiplier:      1.0,
				SpawnDelayReduction: 1000,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(gameID string) []byte {
	switch gameID {
	case "tanks":
		return defaultTanksYAML
	default:
		return nil
	}
}
