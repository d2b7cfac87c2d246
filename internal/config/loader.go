package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSpacepool loads the spacepool configuration.
// Search order: customPath -> ~/.spacepool/configs/spacepool.yaml ->
// ./configs/spacepool.yaml -> embedded default
func LoadSpacepool(customPath string) (SpacepoolConfig, error) {
	var cfg SpacepoolConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("spacepool.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/spacepool.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSpacepoolYAML, &cfg); err != nil {
		return DefaultSpacepoolConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spacepool", "configs", filename)
}

// ApplySpacepoolPreset modifies the config based on a difficulty preset.
func ApplySpacepoolPreset(cfg *SpacepoolConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust round rules based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Damage.ChargedFuseTicks = 1200
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Damage.ChargedFuseTicks = 600
		cfg.Damage.VolatileRadius = 12.0
	}
}
