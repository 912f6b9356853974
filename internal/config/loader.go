package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAnts loads and validates the ant smasher configuration.
// Search order: customPath -> ~/.minigames/configs/ants.yaml -> ./configs/ants.yaml -> embedded default
func LoadAnts(customPath string, preset DifficultyPreset) (AntsConfig, error) {
	cfg, err := load("ants", customPath, defaultAntsYAML, DefaultAntsConfig)
	if err != nil {
		return cfg, err
	}
	ApplyAntsPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFlappy loads and validates the flappy configuration.
// Search order: customPath -> ~/.minigames/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string, preset DifficultyPreset) (FlappyConfig, error) {
	cfg, err := load("flappy", customPath, defaultFlappyYAML, DefaultFlappyConfig)
	if err != nil {
		return cfg, err
	}
	ApplyFlappyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load decodes the first readable config in the search order on top of the
// hard-coded defaults, so a partial file only overrides what it names.
func load[T any](gameID, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Custom path is explicit: failing to read or parse it is an error
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := defaults()
		if err := yaml.Unmarshal(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	parsed := defaults()
	if err := yaml.Unmarshal(embedded, &parsed); err != nil {
		return cfg, nil // Fallback to hard-coded if embed fails
	}
	return parsed, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minigames", "configs", filename)
}
