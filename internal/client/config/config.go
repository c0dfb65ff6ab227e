package config

import "time"

// Config holds runtime settings for the gophaccount client.
//
// Fields:
//   - APIBaseURL: root URL of the account API; endpoint paths are appended.
//   - DBPath: SQLite file holding local storage and cookies.
//   - RequestTimeout: per-request HTTP timeout.
//   - LockoutDuration: how long login stays locked after a lockout answer.
//   - CookieTTL: upper bound on the token cookie lifetime.
//   - RedirectDelay: pause before delayed navigations.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL      string
	DBPath          string
	RequestTimeout  time.Duration
	LockoutDuration time.Duration
	CookieTTL       time.Duration
	RedirectDelay   time.Duration
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.DBPath = "account.db"
	c.RequestTimeout = 30 * time.Second
	c.LockoutDuration = time.Hour
	c.CookieTTL = 72 * time.Hour
	c.RedirectDelay = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from args (without the program name):
// defaults first, then the JSON file named by -c/-config, then flags. Later
// sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
