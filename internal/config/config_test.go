package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: "127.0.0.1"
  port: 8080
  max_connections: 50
  allowed_origins:
    - "http://localhost:3000"
    - "https://example.com"
  codec: protobuf
  public_url: "https://cards.example.com"

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1
  history_limit: 100

game:
  room_id: "lounge"
  min_players: 3

security:
  message_limit:
    max_per_second: 50
    max_warnings: 2

log:
  level: debug
  format: json
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxConnections)
	assert.Len(t, cfg.Server.AllowedOrigins, 2)
	assert.Equal(t, "protobuf", cfg.Server.Codec)
	assert.Equal(t, "https://cards.example.com", cfg.Server.PublicURL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, int64(100), cfg.Redis.HistoryLimit)
	assert.Equal(t, "lounge", cfg.Game.RoomID)
	assert.Equal(t, 3, cfg.Game.MinPlayers)
	assert.Equal(t, 50, cfg.Security.MessageLimit.MaxPerSecond)
	assert.Equal(t, 2, cfg.Security.MessageLimit.MaxWarnings)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialConfigGetsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "server:\n  port: 4000\n"))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "json", cfg.Server.Codec)
	assert.Equal(t, "booth", cfg.Game.RoomID)
	assert.Equal(t, 2, cfg.Game.MinPlayers)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.MonitorPeriodDuration())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, int64(500), cfg.Redis.HistoryLimit)
	assert.Equal(t, 20, cfg.Security.MessageLimit.MaxPerSecond)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Port too low", mutate: func(c *Config) { c.Server.Port = -1 }},
		{name: "Port too high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "Unknown codec", mutate: func(c *Config) { c.Server.Codec = "xml" }},
		{name: "No connections", mutate: func(c *Config) { c.Server.MaxConnections = 0 }},
		{name: "Single player game", mutate: func(c *Config) { c.Game.MinPlayers = 1 }},
		{name: "Unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
