package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the yaml file and fills in defaults", func(t *testing.T) {
		// Given: a config file that sets only some of the values
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nbot:\n  opening: search\n  seed: 7\nselfplay:\n  games: 2\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: the file wins and the rest falls back to defaults
		expected := &Config{
			LogLevel: "debug",
			Bot:      Bot{Opening: "search", Seed: 7},
			SelfPlay: SelfPlay{Games: 2, Threads: 4},
		}
		assert.Equal(t, expected, conf)
	})

	t.Run("Reads the environment when there is no file", func(t *testing.T) {
		t.Setenv("BOT_SEED", "42")
		t.Setenv("PLAYER_MARK", "O")

		conf := MustLoad(filepath.Join(t.TempDir(), "missing.yml"))

		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, Bot{Opening: "random", Seed: 42}, conf.Bot)
		assert.Equal(t, Player{Mark: "O"}, conf.Player)
		assert.Equal(t, SelfPlay{Games: 10, Threads: 4}, conf.SelfPlay)
	})

	t.Run("Panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("bot: [unclosed"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
