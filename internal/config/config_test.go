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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file with every section
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
redis:
  host: redis
  port: "6380"
  game-ttl: 30m
bot:
  mark: X
  tie-break: first
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every value is taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Redis.GameTTL)
		assert.Equal(t, "X", conf.Bot.Mark)
		assert.Equal(t, "first", conf.Bot.TieBreak)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		path := writeConfig(t, "log-level: info\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.GameTTL)
		assert.Equal(t, "O", conf.Bot.Mark)
		assert.Equal(t, "random", conf.Bot.TieBreak)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "bot:\n  tie-break: random\n")
		t.Setenv("BOT_TIE_BREAK", "first")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "first", conf.Bot.TieBreak)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
	})
}
