package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/old-maid/internal/config"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o600))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("port", 4000)
	v.Set("codec", "protobuf")
	v.Set("allowed-origins", []string{"https://a.example"})
	v.Set("min-players", 3)
	v.Set("redis", true)
	v.Set("log-format", "json")

	cfg := config.Default()
	applyOverrides(cfg, v)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "protobuf", cfg.Server.Codec)
	assert.Equal(t, []string{"https://a.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3, cfg.Game.MinPlayers)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)

	// 未设置的保持原值
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "booth", cfg.Game.RoomID)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNewCmd_FlagsOverrideDefaults(t *testing.T) {
	cmd := newCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "4100", "--room_id", "lounge"}))

	port, err := cmd.Flags().GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 4100, port)

	room, err := cmd.Flags().GetString("room-id")
	require.NoError(t, err)
	assert.Equal(t, "lounge", room)
}
