// Package config loads server settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	DBPath      string `env:"DB_PATH" envDefault:"./data/lunchledger.db"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AuditBuffer int    `env:"AUDIT_BUFFER" envDefault:"256"`
}

// Load reads .env if present, then parses the environment.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.AuditBuffer < 1 {
		return Config{}, fmt.Errorf("AUDIT_BUFFER must be positive, got %d", cfg.AuditBuffer)
	}
	return cfg, nil
}
