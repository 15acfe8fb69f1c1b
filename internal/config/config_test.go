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

func TestMustLoad(t *testing.T) {
	t.Run("Defaults fill everything the file leaves out", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf := MustLoad(path)

		// Then: the rest comes from defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "5000", conf.SocketPort)
		assert.Equal(t, Game{BoardAxis: 145, MoveTimeout: 5 * time.Second}, conf.Game)
		assert.Equal(t, Matchmaker{AcceptTimeout: 30 * time.Second, AcceptRate: 50, AcceptBurst: 10}, conf.Matchmaker)
		assert.Equal(t, 10*time.Minute, conf.Redis.SessionTTL)
	})

	t.Run("Nested sections are read from the file", func(t *testing.T) {
		path := writeConfig(t, `
game:
  board-axis: 9
  move-timeout: 250ms
  seed: 42
matchmaker:
  redirect: true
  accept-timeout: 2s
redis:
  host: cache
  port: "6380"
`)

		conf := MustLoad(path)

		assert.Equal(t, Game{BoardAxis: 9, MoveTimeout: 250 * time.Millisecond, Seed: 42}, conf.Game)
		assert.True(t, conf.Matchmaker.Redirect)
		assert.Equal(t, 2*time.Second, conf.Matchmaker.AcceptTimeout)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment wins over the file", func(t *testing.T) {
		path := writeConfig(t, "game:\n  move-timeout: 1s\n")
		t.Setenv("GAME_MOVE_TIMEOUT", "3s")

		conf := MustLoad(path)

		assert.Equal(t, 3*time.Second, conf.Game.MoveTimeout)
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
