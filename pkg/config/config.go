package config

import (
	"fmt"
	"time"

	"clapperboard/movie"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080" validate:"min=0,max=65535"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogPath      string `envconfig:"LOG_PATH"`
	Debug        bool   `envconfig:"DEBUG"`

	Endpoint struct {
		URI     string        `envconfig:"ENDPOINT_URI" default:"http://127.0.0.1:5000/" validate:"required,url"`
		Timeout time.Duration `envconfig:"ENDPOINT_TIMEOUT" default:"0s" validate:"min=0"`
	}
	Movies struct {
		// Path, when set, is used verbatim and the parameters below are ignored.
		Path               string `envconfig:"MOVIES_PATH"`
		Resource           string `envconfig:"MOVIES_RESOURCE" default:"movies" validate:"required"`
		StartingWithinDays *int   `envconfig:"MOVIES_STARTING_WITHIN_DAYS" validate:"omitempty,min=0"`
		IMDBData           *bool  `envconfig:"MOVIES_IMDB_DATA"`
		TheatreID          *int   `envconfig:"MOVIES_THEATRE_ID" validate:"omitempty,min=0"`
		ShowTimes          *bool  `envconfig:"MOVIES_SHOW_TIMES"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	return cfg, nil
}

// MoviesEndpoint returns the endpoint of the movie listing for this deployment.
func (c *Config) MoviesEndpoint() movie.Endpoint {
	if c.Movies.Path != "" {
		return movie.Endpoint{BaseURI: c.Endpoint.URI, Path: c.Movies.Path}
	}
	return movie.NewEndpoint(c.Endpoint.URI, c.Movies.Resource, movie.Query{
		StartingWithinDays: c.Movies.StartingWithinDays,
		IMDBData:           c.Movies.IMDBData,
		TheatreID:          c.Movies.TheatreID,
		ShowTimes:          c.Movies.ShowTimes,
	})
}
