// Package config loads runtime configuration for the gophaccount client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:3000/api)
//	-d string   local database file (default account.db)
//	-t int      request timeout in seconds (default 30)
//	-l string   log level: debug, info, warn, error (default info)
//
// # JSON schema
//
// Durations are Go duration strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://accounts.example.com/api",
//	  "db_path": "/var/lib/gophaccount/account.db",
//	  "request_timeout": "10s",
//	  "lockout_duration": "1h",
//	  "cookie_ttl": "72h",
//	  "redirect_delay": "3s",
//	  "log_level": "debug"
//	}
//
// Lockout duration, cookie lifetime and redirect delay are only settable
// from JSON.
package config
