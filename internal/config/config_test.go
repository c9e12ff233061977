package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoreboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, time.Second, cfg.Session.TickInterval)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9090"
  allowed_origins: ["http://court.local"]
log:
  level: debug
  format: console
session:
  tick_interval: 500ms
  client_buffer: 16
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://court.local"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.TickInterval)
	assert.Equal(t, 16, cfg.Session.ClientBuffer)
}

func TestLoad_EnvBeatsYAML(t *testing.T) {
	path := writeFile(t, "server:\n  addr: \":9090\"\nsession:\n  client_buffer: 16\n")
	t.Setenv("SCOREBOARD_ADDR", ":7070")
	t.Setenv("SCOREBOARD_CLIENT_BUFFER", "4")
	t.Setenv("SCOREBOARD_TICK_INTERVAL", "250ms")
	t.Setenv("SCOREBOARD_ALLOWED_ORIGINS", "http://a.local, http://b.local,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Session.ClientBuffer)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.TickInterval)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "server: ["))
		assert.Error(t, err)
	})
	t.Run("bad env int", func(t *testing.T) {
		t.Setenv("SCOREBOARD_CLIENT_BUFFER", "lots")
		_, err := Load("")
		assert.ErrorContains(t, err, "SCOREBOARD_CLIENT_BUFFER")
	})
	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("SCOREBOARD_TICK_INTERVAL", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "SCOREBOARD_TICK_INTERVAL")
	})
	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeFile(t, "session:\n  tick_interval: -1s\n  client_buffer: 0\nlog:\n  format: xml\n"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "tick_interval")
		assert.ErrorContains(t, err, "client_buffer")
		assert.ErrorContains(t, err, "log.format")
	})
}
