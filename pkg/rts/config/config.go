package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/platewise/rts/pkg/rts/internalerr"
)

// Config holds repository settings
type Config struct {
	Store   string `yaml:"store"`
	Session string `yaml:"session"`
}

// Default returns the settings used when no config file exists yet
func Default() Config {
	return Config{
		Store:   "rts.db",
		Session: "main",
	}
}

// Load reads repository settings from a YAML file. Missing fields fall back
// to the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if cfg.Store == "" {
		return Config{}, fmt.Errorf("%w: store path must not be empty", internalerr.ErrInvalidConfig)
	}
	if cfg.Session == "" {
		cfg.Session = Default().Session
	}
	return cfg, nil
}

// Save writes repository settings to a YAML file
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
