// Package config provides YAML-based configuration loading and difficulty
// presets for the rocks-and-diamonds arcade.
package config

import (
	"fmt"
	"time"
)

// RocksConfig contains all configuration for the rocks game.
type RocksConfig struct {
	Timing     RocksTiming      `yaml:"timing"`
	Grid       RocksGrid        `yaml:"grid"`
	Rules      RocksRules       `yaml:"rules"`
	Camera     RocksCamera      `yaml:"camera"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RocksTiming holds the sweep periods in milliseconds.
type RocksTiming struct {
	GravityMS   int `yaml:"gravity_ms"`
	AnimationMS int `yaml:"animation_ms"`
	EntityMS    int `yaml:"entity_ms"`
}

// RocksGrid is the grid capacity. Levels larger than this are rejected.
type RocksGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RocksRules holds the gameplay switches.
type RocksRules struct {
	PushRocks bool   `yaml:"push_rocks"`
	Blast     string `yaml:"blast"`    // "dust" or "demolish"
	Movables  string `yaml:"movables"` // "tiles" or "entities"
}

// RocksCamera controls the viewport cosmetics.
type RocksCamera struct {
	ShakeFrames int `yaml:"shake_frames"`
	ShakeRadius int `yaml:"shake_radius"`
}

// Blast modes and movable representations accepted in RocksRules.
const (
	BlastDust        = "dust"
	BlastDemolish    = "demolish"
	MovablesTiles    = "tiles"
	MovablesEntities = "entities"
)

// Gravity returns the gravity sweep period.
func (t RocksTiming) Gravity() time.Duration {
	return time.Duration(t.GravityMS) * time.Millisecond
}

// Animation returns the animation sweep period.
func (t RocksTiming) Animation() time.Duration {
	return time.Duration(t.AnimationMS) * time.Millisecond
}

// Entity returns the entity sweep period.
func (t RocksTiming) Entity() time.Duration {
	return time.Duration(t.EntityMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c RocksConfig) Validate() error {
	if c.Timing.GravityMS <= 0 || c.Timing.AnimationMS <= 0 || c.Timing.EntityMS <= 0 {
		return fmt.Errorf("config: timing periods must be positive, got %+v", c.Timing)
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 || c.Grid.Width > 255 || c.Grid.Height > 255 {
		return fmt.Errorf("config: grid %dx%d out of range", c.Grid.Width, c.Grid.Height)
	}
	switch c.Rules.Blast {
	case BlastDust, BlastDemolish:
	default:
		return fmt.Errorf("config: unknown blast mode %q", c.Rules.Blast)
	}
	switch c.Rules.Movables {
	case MovablesTiles, MovablesEntities:
	default:
		return fmt.Errorf("config: unknown movables %q", c.Rules.Movables)
	}
	if c.Camera.ShakeFrames < 0 || c.Camera.ShakeRadius < 0 {
		return fmt.Errorf("config: negative camera shake")
	}
	return nil
}

// DifficultyConfig defines how the gravity sweep speeds up through the
// campaign.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // extra gravity speed at max difficulty
	MinGravityMS    int     `yaml:"min_gravity_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
