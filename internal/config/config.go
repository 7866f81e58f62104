// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Store variant names accepted in Config.Store.
const (
	StoreLocal    = "local"
	StorePostgres = "postgres"
)

// Config holds everything the process reads from its environment: which
// record store variant to run, where it lives, and the credential for the
// generative capabilities.
type Config struct {
	Store       string `envconfig:"QABRISTAN_STORE"    default:"local"`
	DataDir     string `envconfig:"QABRISTAN_DATA_DIR"`
	DatabaseDSN string `envconfig:"QABRISTAN_DSN"`
	GeminiKey   string `envconfig:"GEMINI_API_KEY"`
	GeminiModel string `envconfig:"QABRISTAN_MODEL"    default:"gemini-3-flash-preview"`
}

// Load populates a Config from the environment and applies defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return &cfg, nil
}

// Validate checks the store selection and its required settings.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreLocal:
		if c.DataDir == "" {
			return fmt.Errorf("local store requires a data directory")
		}
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("postgres store requires QABRISTAN_DSN")
		}
	default:
		return fmt.Errorf("unknown store variant %q", c.Store)
	}
	return nil
}

func defaultDataDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qabristan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "qabristan")
}
