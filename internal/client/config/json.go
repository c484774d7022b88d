package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bookgenie/bookgenie-cli/internal/flagx"
	"github.com/bookgenie/bookgenie-cli/internal/timex"
)

// JsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the file
// spell intervals either as strings like "15s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDBPath    string         `json:"state_db_path"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values from the JSON file given via the
// -c/-config flags. No flag means no JSON is loaded. Read or unmarshal
// errors panic; config loading happens before anything worth preserving.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
