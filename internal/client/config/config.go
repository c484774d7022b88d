// Package config loads runtime settings for the BookGenie CLI.
//
// Sources are applied in order, later ones winning: built-in defaults, a
// .env file (if present), a JSON file given via -c/-config, and finally
// command-line flags.
package config

import "time"

// Config holds runtime settings for the BookGenie CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, path prefix included.
//   - RequestTimeout: per-request HTTP timeout.
//   - StateDBPath: path of the local sqlite state database.
//   - LogLevel: debug/info/warn/error.
//   - Locator: optional deep link (e.g. "tab=books") to open on start.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StateDBPath    string
	LogLevel       string
	Locator        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.RequestTimeout = 15 * time.Second
	c.StateDBPath = "bookgenie.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
