package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "quote-service", cfg.App.Name)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "data/quotes.json", cfg.Dataset.Path)
		assert.Equal(t, "Wikiquote", cfg.Sources.Wikiquote.Name)
		assert.Equal(t, DefaultCollectorFetchLimit, cfg.Collector.FetchLimit)
		assert.InDelta(t, DefaultCollectorSimilarity, cfg.Collector.Similarity, 0.0001)
		assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("APP_SERVER_PORT", "9191")
		t.Setenv("APP_LOG_LEVEL", "debug")
		t.Setenv("APP_DATASET_PATH", "/var/lib/quotes/quotes.json")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 9191, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "/var/lib/quotes/quotes.json", cfg.Dataset.Path)
	})

	t.Run("missing profile file is not an error", func(t *testing.T) {
		cfg, err := Load("no-such-profile")

		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()

		cfg, err := Load("")
		require.NoError(t, err)

		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid(t).Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantMsg: "server.port",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantMsg: "log.level must be one of",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.App.Environment = "staging" },
			wantMsg: "app.environment must be one of",
		},
		{
			name:    "missing dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantMsg: "dataset.path is required",
		},
		{
			name:    "source URL must be a URL",
			mutate:  func(c *Config) { c.Sources.Wikiquote.BaseURL = "not a url" },
			wantMsg: "must be a valid URL",
		},
		{
			name:    "similarity above one",
			mutate:  func(c *Config) { c.Collector.Similarity = 1.5 },
			wantMsg: "collector.similarity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
