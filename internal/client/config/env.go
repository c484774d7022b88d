package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading a
// .env file first when one exists next to the binary. Recognized variables:
//
//	BOOKGENIE_API_URL        base URL of the backend API
//	BOOKGENIE_TIMEOUT        request timeout, e.g. "15s"
//	BOOKGENIE_STATE_DB       sqlite state database path
//	BOOKGENIE_LOG_LEVEL      debug|info|warn|error
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BOOKGENIE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BOOKGENIE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("BOOKGENIE_STATE_DB"); v != "" {
		cfg.StateDBPath = v
	}
	if v := os.Getenv("BOOKGENIE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
