package config

import (
	"flag"
	"os"
	"time"

	"github.com/bookgenie/bookgenie-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags:
//
//	-a string   base URL of the backend API
//	-t int      request timeout in seconds
//	-s string   sqlite state database path
//	-l string   log level
//	-tab string deep link to open on start, e.g. "tab=books"
//
// os.Args is filtered to the flags handled here so the -c/-config flags of
// the JSON layer do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-l", "-tab"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StateDBPath, "s", cfg.StateDBPath, "state database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Locator, "tab", cfg.Locator, "deep link to open on start")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
