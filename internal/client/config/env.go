package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig is a DTO used exclusively for environment parsing via
// go-envconfig. No env defaults are declared here: an unset variable leaves
// the corresponding Config field untouched so earlier layers survive.
type envConfig struct {
	APIBaseURL     string        `env:"LAWLINK_API_URL"`
	HubURL         string        `env:"LAWLINK_HUB_URL"`
	DatabaseDSN    string        `env:"LAWLINK_DATABASE_DSN"`
	RequestTimeout time.Duration `env:"LAWLINK_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LAWLINK_LOG_LEVEL"`
}

// parseEnv overlays Config with values from LAWLINK_* environment variables.
// Panics on unparseable values (e.g. a malformed duration).
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.HubURL != "" {
		cfg.HubURL = ec.HubURL
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
