// Package config loads runtime configuration for the LawLink CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. LAWLINK_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-w string   websocket URL of the realtime hub
//	-d string   sqlite DSN for the local session store
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:5052",
//	  "hub_url": "ws://127.0.0.1:5052/hubs/chat",
//	  "database_dsn": "lawlink.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — builds Config by layering all sources
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
