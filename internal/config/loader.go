package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "flapper.yaml"

// Load loads the flapper configuration.
// Search order: customPath -> ~/.flapper/configs/flapper.yaml -> ./configs/flapper.yaml -> embedded default.
// Only a missing or broken customPath is an error; the other locations are optional.
func Load(customPath string) (FlapperConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlapperConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlapperConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(configFileName), filepath.Join("configs", configFileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultFlapperYAML)
	if err != nil {
		return DefaultFlapperConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults, so partial files
// only override what they mention, then validates the result.
func Parse(data []byte) (FlapperConfig, error) {
	cfg := DefaultFlapperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlapperConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FlapperConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flapper", "configs", filename)
}
