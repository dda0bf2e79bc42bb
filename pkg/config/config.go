// Package config loads the server configuration from config/engine.yaml.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config is the engine API server configuration.
type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Persistence struct {
		// Enabled turns on the processed-deal audit store; it also
		// requires DATABASE_URL to be set.
		Enabled bool `yaml:"enabled"`
	} `yaml:"persistence"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Environment = "dev"
	cfg.Server.Port = 8080
	return cfg
}

// Load reads the yaml file at path and applies environment overrides
// (PORT, ENVIRONMENT). A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	return cfg, nil
}
