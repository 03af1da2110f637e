package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkeye/Poker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 3001, cfg.Port)
		assert.Equal(t, 54*time.Second, cfg.PingPeriod)
		assert.Equal(t, "consensus", cfg.Strategy)
		assert.Equal(t, "soft", cfg.DisconnectPolicy)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "config.test.yaml")
		require.NoError(t, os.WriteFile(file, []byte("port: 9090\nstrategy: mode\nrate_interval: 2s\n"), 0o600))

		cfg, err := config.LoadFile(file)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "mode", cfg.Strategy)
		assert.Equal(t, 2*time.Second, cfg.RateInterval)
		assert.Equal(t, int64(32768), cfg.ReadLimit)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("POKER_PORT", "4000")
		t.Setenv("POKER_DISCONNECT_POLICY", "hard")
		cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Port)
		assert.Equal(t, "hard", cfg.DisconnectPolicy)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "config.broken.yaml")
		require.NoError(t, os.WriteFile(file, []byte("port: [9090\nstrategy: mode\n"), 0o600))

		_, err := config.LoadFile(file)
		assert.ErrorContains(t, err, "failed to read config")
	})

	t.Run("invalid port is rejected", func(t *testing.T) {
		t.Setenv("POKER_PORT", "70000")
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 32, cfg.SendBuffer)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}
