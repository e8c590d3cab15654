package config

import (
	_ "embed"
)

//go:embed defaults/rocks.yaml
var defaultRocksYAML []byte

// DefaultRocksConfig returns the hardcoded rocks configuration.
func DefaultRocksConfig() RocksConfig {
	return RocksConfig{
		Timing: RocksTiming{
			GravityMS:   250,
			AnimationMS: 100,
			EntityMS:    16,
		},
		Grid: RocksGrid{
			Width:  64,
			Height: 64,
		},
		Rules: RocksRules{
			PushRocks: true,
			Blast:     BlastDust,
			Movables:  MovablesTiles,
		},
		Camera: RocksCamera{
			ShakeFrames: 10,
			ShakeRadius: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				MinGravityMS:    100,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "rocks", "rocks_entities":
		return defaultRocksYAML
	default:
		return nil
	}
}
