package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRocks loads the rocks configuration.
// Search order: customPath -> ~/.arcade/configs/rocks.yaml -> ./configs/rocks.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they name.
func LoadRocks(customPath string) (RocksConfig, error) {
	cfg := DefaultRocksConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("rocks.yaml"), filepath.Join("configs", "rocks.yaml")}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		fileCfg := DefaultRocksConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil && fileCfg.Validate() == nil {
			return fileCfg, nil
		}
	}

	if err := yaml.Unmarshal(defaultRocksYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultRocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyRocksPreset modifies the config based on a difficulty preset.
func ApplyRocksPreset(cfg *RocksConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Timing.GravityMS = cfg.Timing.GravityMS * 3 / 2
		cfg.Camera.ShakeFrames = cfg.Camera.ShakeFrames / 2
	case DifficultyHard:
		cfg.Rules.PushRocks = false
	}
}
