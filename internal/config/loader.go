package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SkippedFile is a config file that was found but could not be used.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadBreakout loads the breakout configuration.
// Search order: customPath -> ~/.brickbreak/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
// Files are applied on top of the defaults, so a partial file only overrides what it names.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	cfg, _, err := ResolveBreakout(customPath)
	return cfg, err
}

// ResolveBreakout is LoadBreakout that also reports the search-path files it
// skipped because they could not be parsed or failed validation.
// A broken customPath is an error rather than a skip.
func ResolveBreakout(customPath string) (BreakoutConfig, []SkippedFile, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseBreakout(data)
		if err != nil {
			return BreakoutConfig{}, nil, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil, nil
	}

	var skipped []SkippedFile
	candidates := []string{filepath.Join("configs", "breakout.yaml")}
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue // Missing files are normal
		}
		cfg, err := ParseBreakout(data)
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: path, Err: err})
			continue
		}
		return cfg, skipped, nil
	}

	// Use embedded default YAML
	cfg, err := ParseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), skipped, nil // Fallback to hardcoded if embed fails
	}
	return cfg, skipped, nil
}

// ParseBreakout decodes YAML over the defaults and validates the result.
func ParseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// MarshalBreakout encodes a config as YAML, e.g. for `brickbreak config`.
func MarshalBreakout(cfg BreakoutConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickbreak", "configs", filename)
}
