// Package config loads optional converter defaults from shieldconv.yaml.
// Command-line flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config flag
// is given.
const DefaultFile = "shieldconv.yaml"

// Config holds converter defaults.
type Config struct {
	OutputDir   string `yaml:"output_dir"`
	HealthLabel string `yaml:"health_label"`
	Workers     int    `yaml:"workers"`
	DBPath      string `yaml:"db_path"`
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-specified
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadDefault loads DefaultFile from the working directory; a missing file
// yields an empty config.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}
