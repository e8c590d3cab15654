package config

import (
	"math"
	"time"
)

// DifficultyManager derives the gravity period for a level index.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for the given level index.
func (d *DifficultyManager) Level(levelIndex int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(levelIndex)/maxAt, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GravityPeriod shortens base as difficulty rises: the sweep runs
// (1 + level*speed_multiplier) times as often, never faster than
// min_gravity_ms.
func (d *DifficultyManager) GravityPeriod(base time.Duration, levelIndex int) time.Duration {
	if !d.cfg.Enabled {
		return base
	}
	speed := 1.0 + d.Level(levelIndex)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	period := time.Duration(float64(base) / speed)

	floor := time.Duration(d.cfg.Scaling.MinGravityMS) * time.Millisecond
	if floor > base {
		floor = base
	}
	if period < floor {
		period = floor
	}
	return period.Round(time.Millisecond)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
