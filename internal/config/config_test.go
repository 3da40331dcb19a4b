package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Service.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Service.GetTimeout())
	assert.Equal(t, time.Second, cfg.Service.GetWakeDelay())
	assert.True(t, cfg.Service.Wake)
	assert.Equal(t, 20, cfg.Session.HistorySize)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr())
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"), "")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", `
[service]
base_url = "https://t-lingo.onrender.com"
timeout = "3s"
wake = false

[session]
history_size = 5

[server]
port = 8088
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://t-lingo.onrender.com", cfg.Service.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Service.GetTimeout())
	assert.False(t, cfg.Service.Wake)
	assert.Equal(t, 5, cfg.Session.HistorySize)
	assert.Equal(t, 8088, cfg.Server.Port)
	// Untouched values keep their defaults.
	assert.Equal(t, 5, cfg.Service.RateLimit)
}

func TestLoadConfig_LaterFileWins(t *testing.T) {
	first := writeFile(t, "a.toml", "[server]\nport = 7000\n")
	second := writeFile(t, "b.toml", "[server]\nport = 7001\n")

	cfg, err := LoadConfig(first, second)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TACIT_SERVICE_URL", "http://example.test")
	t.Setenv("TACIT_SERVICE_WAKE", "false")
	t.Setenv("TACIT_HISTORY_SIZE", "3")
	t.Setenv("TACIT_PORT", "9999")
	t.Setenv("TACIT_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", cfg.Service.BaseURL)
	assert.False(t, cfg.Service.Wake)
	assert.Equal(t, 3, cfg.Session.HistorySize)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeFile(t, "bad.toml", "[service\nbase_url=")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Service.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Session.HistorySize = -1
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestGetTimeout_BadValueFallsBack(t *testing.T) {
	c := ServiceConfig{Timeout: "soon"}
	assert.Equal(t, 10*time.Second, c.GetTimeout())
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv("TACIT_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", DefaultPath())
}
