package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5052", c.APIBaseURL)
	assert.Equal(t, "ws://127.0.0.1:5052/hubs/chat", c.HubURL)
	assert.Equal(t, "lawlink.db", c.DatabaseDSN)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:5052", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_OverlaysOnlySetVariables(t *testing.T) {
	t.Setenv("LAWLINK_API_URL", "http://env.example:8080")
	t.Setenv("LAWLINK_REQUEST_TIMEOUT", "25s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env.example:8080", cfg.APIBaseURL)
	assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
	// Untouched by env, keeps the default.
	assert.Equal(t, "ws://127.0.0.1:5052/hubs/chat", cfg.HubURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv_InvalidDurationPanics(t *testing.T) {
	t.Setenv("LAWLINK_REQUEST_TIMEOUT", "not-a-duration")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseEnv(cfg) })
}
