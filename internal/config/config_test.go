package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	c := Get()
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.Equal(t, "leduc-holdem", c.Episode.Env)
	assert.Equal(t, int64(42), c.Episode.Seed)
	assert.Equal(t, 2, c.Episode.NumPlayers)
	assert.Equal(t, 10000, c.Replay.BufferCapacity)
	assert.Equal(t, 256, c.Replay.BatchSize)
	assert.Equal(t, "trajectories", c.Replay.Dir)
}

func TestInitReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
logging:
  level: debug
  format: json
episode:
  env: uno
  seed: 7
  num_players: 4
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))
	require.NoError(t, Init(path))

	c := Get()
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, "uno", c.Episode.Env)
	assert.Equal(t, int64(7), c.Episode.Seed)
	assert.Equal(t, 4, c.Episode.NumPlayers)
	assert.Equal(t, 256, c.Replay.BatchSize, "unset keys keep their defaults")
	assert.Equal(t, path, ConfigFilePath())
}

func TestEnvVarOverridesDefault(t *testing.T) {
	t.Setenv("CARDGYM_EPISODE_ENV", "blackjack")
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	assert.Equal(t, "blackjack", Get().Episode.Env)
	assert.Equal(t, "blackjack", GetString("episode.env"))
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
	assert.Error(t, Init(path))
}

func TestSetUpdatesStruct(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	Set("replay.batch_size", 64)
	assert.Equal(t, 64, Get().Replay.BatchSize)
	assert.Equal(t, 64, GetInt("replay.batch_size"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Logging: LoggingConfig{Level: "info", Format: "console"},
			Episode: EpisodeConfig{Env: "leduc-holdem", Seed: 42, NumPlayers: 2},
			Replay:  ReplayConfig{BufferCapacity: 100, BatchSize: 10, Dir: "trajectories"},
		}
	}
	require.NoError(t, Validate(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty env", func(c *Config) { c.Episode.Env = "" }},
		{"zero players", func(c *Config) { c.Episode.NumPlayers = 0 }},
		{"zero capacity", func(c *Config) { c.Replay.BufferCapacity = 0 }},
		{"zero batch", func(c *Config) { c.Replay.BatchSize = 0 }},
		{"empty dir", func(c *Config) { c.Replay.Dir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, Validate(c))
		})
	}
}
