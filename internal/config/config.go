// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import "time"

// TanksConfig contains all tunable configuration for the tank game.
// Defaults reproduce the classic rules exactly; presets and user files
// override individual sections.
type TanksConfig struct {
	Player     TanksPlayer      `yaml:"player"`
	Enemies    TanksEnemies     `yaml:"enemies"`
	Fog        TanksFog         `yaml:"fog"`
	Render     TanksRender      `yaml:"render"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TilePoint addresses a map tile by column and row.
type TilePoint struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// TanksPlayer defines player parameters.
type TanksPlayer struct {
	Lives int       `yaml:"lives"`
	Start TilePoint `yaml:"start"`
}

// TanksEnemies defines AI actor parameters and the spawn policy.
type TanksEnemies struct {
	Class          string      `yaml:"class"`
	Initial        int         `yaml:"initial"`
	MaxActive      int         `yaml:"max_active"`
	SpawnDelayMs   int         `yaml:"spawn_delay_ms"`
	VictoryGraceMs int         `yaml:"victory_grace_ms"` // victory is held back during the last part of a spawn cycle
	SpeedFactor    float64     `yaml:"speed_factor"`
	FireChance     float64     `yaml:"fire_chance"` // per-tick probability once the cooldown allows
	RetargetMinMs  int         `yaml:"retarget_min_ms"`
	RetargetMaxMs  int         `yaml:"retarget_max_ms"`
	KillScore      int         `yaml:"kill_score"`
	SpawnPoints    []TilePoint `yaml:"spawn_points"`
}

// SpawnDelay returns the spawn cycle length.
func (e TanksEnemies) SpawnDelay() time.Duration {
	return time.Duration(e.SpawnDelayMs) * time.Millisecond
}

// VictoryGrace returns the tail of the spawn cycle during which victory is not declared.
func (e TanksEnemies) VictoryGrace() time.Duration {
	return time.Duration(e.VictoryGraceMs) * time.Millisecond
}

// RetargetWindow returns the bounds of the AI retarget interval.
func (e TanksEnemies) RetargetWindow() (time.Duration, time.Duration) {
	return time.Duration(e.RetargetMinMs) * time.Millisecond,
		time.Duration(e.RetargetMaxMs) * time.Millisecond
}

// TanksFog defines the fog-of-war overlay.
type TanksFog struct {
	Enabled     bool `yaml:"enabled"`
	RadiusTiles int  `yaml:"radius_tiles"`
}

// TanksRender defines how world pixels map onto terminal cells.
type TanksRender struct {
	CellWidthPx  int `yaml:"cell_width_px"`
	CellHeightPx int `yaml:"cell_height_px"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier     float64 `yaml:"speed_multiplier"`      // Added to AI speed factor at max difficulty
	FireMultiplier      float64 `yaml:"fire_multiplier"`       // Added to AI fire chance at max difficulty
	SpawnDelayReduction int     `yaml:"spawn_delay_reduction"` // Milliseconds removed from the spawn cycle at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI string to a preset. Unknown values map to "".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}
