package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   API base URL
//	-d string   database file
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are looked at; -c/-config belongs to parseJson.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("gophaccount", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", *timeout)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
