package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env when present. A missing file is not an error; env
// vars can be set by other means.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetEnv returns the value of key or def when it is unset or empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
