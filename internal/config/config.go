package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all engine configuration.
type Config struct {
	Engine  EngineConfig
	Logging LogConfig
}

// EngineConfig holds sandbox execution limits.
type EngineConfig struct {
	DefaultTimeoutMs int   `envconfig:"SANDBOX_TIMEOUT_MS" default:"5000"`
	MaxTimeoutMs     int   `envconfig:"SANDBOX_MAX_TIMEOUT_MS" default:"30000"`
	MaxMemoryMB      int64 `envconfig:"SANDBOX_MAX_MEMORY_MB" default:"64"`
	MaxCallStack     int   `envconfig:"SANDBOX_MAX_STACK" default:"1024"`
	PoolSize         int   `envconfig:"SANDBOX_POOL_SIZE" default:"8"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DefaultTimeoutMs: 5000,
			MaxTimeoutMs:     30000,
			MaxMemoryMB:      64,
			MaxCallStack:     1024,
			PoolSize:         8,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
