package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings. Environment values are read first and
// command-line flags override them in main.
type Config struct {
	Level        string  `env:"PATROL_LEVEL" envDefault:"arena.json"`
	Debug        bool    `env:"PATROL_DEBUG"`
	LogLevel     string  `env:"PATROL_LOG_LEVEL" envDefault:"info"`
	WatchPrefabs bool    `env:"PATROL_WATCH_PREFABS"`
	MaxDelta     float64 `env:"PATROL_MAX_DELTA" envDefault:"0.1"`
	BaseMonitor  bool    `env:"PATROL_BASE_MONITOR"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFrom parses Config from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDelta < 0 {
		return fmt.Errorf("config: max delta must not be negative, got %v", c.MaxDelta)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
