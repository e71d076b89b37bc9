package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Run modes. HTTP serves the chi API; MCP speaks the Model Context
// Protocol over stdio. Both expose the same three actions.
const (
	modeHTTP = "http"
	modeMCP  = "mcp"
)

type appConfig struct {
	Port     int    `env:"PORT" envDefault:"8000"`
	RunMode  string `env:"RUN_MODE" envDefault:"http"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadAppConfig() (appConfig, error) {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.RunMode != modeHTTP && cfg.RunMode != modeMCP {
		return appConfig{}, fmt.Errorf("unknown RUN_MODE %q (want %s or %s)", cfg.RunMode, modeHTTP, modeMCP)
	}
	return cfg, nil
}
