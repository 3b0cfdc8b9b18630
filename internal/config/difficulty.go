package config

import (
	"math"
	"time"
)

// minSpawnDelay keeps a spawn cycle long enough to contain the victory grace window.
const minSpawnDelay = 1500 * time.Millisecond

// DifficultyManager calculates dynamic AI parameters based on score/time.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

func (d *DifficultyManager) progressing() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.progressing() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.cfg.InitialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// Speed scales an AI speed factor with the current level.
func (d *DifficultyManager) Speed(baseFactor float64, score int, ticks int) float64 {
	if !d.cfg.Enabled {
		return baseFactor
	}
	level := d.Level(score, ticks)
	return baseFactor * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// FireChance scales the per-tick AI fire probability, capped at 1.
func (d *DifficultyManager) FireChance(base float64, score int, ticks int) float64 {
	if !d.cfg.Enabled {
		return base
	}
	level := d.Level(score, ticks)
	return clampF(base*(1.0+level*d.cfg.Scaling.FireMultiplier), 0.0, 1.0)
}

// SpawnDelay shortens the spawn cycle as difficulty rises.
func (d *DifficultyManager) SpawnDelay(base time.Duration, score int, ticks int) time.Duration {
	if !d.cfg.Enabled {
		return base
	}
	level := d.Level(score, ticks)
	reduction := time.Duration(level*float64(d.cfg.Scaling.SpawnDelayReduction)) * time.Millisecond
	result := base - reduction
	if result < minSpawnDelay {
		result = minSpawnDelay
	}
	return result
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
