package config

import "time"

// Config holds runtime settings for the LawLink CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API (no trailing slash).
//   - HubURL: websocket endpoint of the realtime hub.
//   - DatabaseDSN: sqlite DSN for the local session store.
//   - RequestTimeout: per-request deadline for API calls.
//   - LogLevel: zerolog level name (debug, info, warn, error).
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	APIBaseURL     string
	HubURL         string
	DatabaseDSN    string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5052"
	c.HubURL = "ws://127.0.0.1:5052/hubs/chat"
	c.DatabaseDSN = "lawlink.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
