package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/flagx"
	"github.com/dmitrijs2005/gophaccount/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration,
// so "72h" and integer nanoseconds both work.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	DBPath          string         `json:"db_path"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	LockoutDuration timex.Duration `json:"lockout_duration"`
	CookieTTL       timex.Duration `json:"cookie_ttl"`
	RedirectDelay   timex.Duration `json:"redirect_delay"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Keys missing from the file leave cfg untouched.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	for _, d := range []struct {
		src timex.Duration
		dst *time.Duration
	}{
		{jc.RequestTimeout, &cfg.RequestTimeout},
		{jc.LockoutDuration, &cfg.LockoutDuration},
		{jc.CookieTTL, &cfg.CookieTTL},
		{jc.RedirectDelay, &cfg.RedirectDelay},
	} {
		if d.src.Duration > 0 {
			*d.dst = d.src.Duration
		}
	}
	return nil
}
