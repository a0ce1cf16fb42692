// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clapperboard/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":                     "test",
			"PORT":                        "9090",
			"SENTRY_DSN":                  "https://test@sentry.io/123",
			"ALLOW_ORIGINS":               "*",
			"LOG_PATH":                    "/tmp/logs",
			"DEBUG":                       "true",
			"ENDPOINT_URI":                "https://clapperboard.example.com/",
			"ENDPOINT_TIMEOUT":            "5s",
			"MOVIES_STARTING_WITHIN_DAYS": "14",
			"MOVIES_IMDB_DATA":            "true",
			"MOVIES_THEATRE_ID":           "3",
			"MOVIES_SHOW_TIMES":           "false",
		}

		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "/tmp/logs", cfg.LogPath)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "https://clapperboard.example.com/", cfg.Endpoint.URI)
		assert.Equal(t, 5*time.Second, cfg.Endpoint.Timeout)
		require.NotNil(t, cfg.Movies.StartingWithinDays)
		assert.Equal(t, 14, *cfg.Movies.StartingWithinDays)
		require.NotNil(t, cfg.Movies.IMDBData)
		assert.True(t, *cfg.Movies.IMDBData)
		require.NotNil(t, cfg.Movies.TheatreID)
		assert.Equal(t, 3, *cfg.Movies.TheatreID)
		require.NotNil(t, cfg.Movies.ShowTimes)
		assert.False(t, *cfg.Movies.ShowTimes)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "http://127.0.0.1:5000/", cfg.Endpoint.URI)
		assert.Equal(t, time.Duration(0), cfg.Endpoint.Timeout)
		assert.Equal(t, "movies", cfg.Movies.Resource)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("MOVIES_IMDB_DATA", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid timeout", func(t *testing.T) {
		t.Setenv("ENDPOINT_TIMEOUT", "soon")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("rejects endpoint that is not a url", func(t *testing.T) {
		t.Setenv("ENDPOINT_URI", "not a url")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("rejects negative theatre id", func(t *testing.T) {
		t.Setenv("MOVIES_THEATRE_ID", "-1")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid config")
	})
}

func TestMoviesEndpoint(t *testing.T) {
	t.Run("builds path from parameters", func(t *testing.T) {
		t.Setenv("MOVIES_STARTING_WITHIN_DAYS", "14")
		t.Setenv("MOVIES_IMDB_DATA", "1")
		t.Setenv("MOVIES_THEATRE_ID", "3")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t,
			"http://127.0.0.1:5000/movies?starting_within_days=14&imdb_data=1&theatre_id=3",
			cfg.MoviesEndpoint().URL())
	})

	t.Run("raw path wins over parameters", func(t *testing.T) {
		t.Setenv("ENDPOINT_URI", "http://localhost:5000/")
		t.Setenv("MOVIES_PATH", "movies?imdb_data=1")
		t.Setenv("MOVIES_THEATRE_ID", "3")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:5000/movies?imdb_data=1", cfg.MoviesEndpoint().URL())
	})

	t.Run("bare resource without parameters", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Endpoint.URI = "http://127.0.0.1:5000/"
		cfg.Movies.Resource = "movies"

		assert.Equal(t, "http://127.0.0.1:5000/movies", cfg.MoviesEndpoint().URL())
	})
}
