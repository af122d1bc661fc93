package logger

import (
	"os"
	"strings"
)

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // json, text
}

// DefaultConfig derives the logger config from APP_ENV, then LOG_LEVEL
// and LOG_FORMAT override it.
func DefaultConfig() LogConfig {
	cfg := LogConfig{Level: "debug", Format: "text"}
	if env := os.Getenv("APP_ENV"); env == "production" || env == "prod" {
		cfg = LogConfig{Level: "info", Format: "json"}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}
	return cfg
}
