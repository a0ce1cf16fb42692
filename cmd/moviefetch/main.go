package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"clapperboard/httpclient"
	"clapperboard/movie"
	"clapperboard/pkg/config"
	"clapperboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type optionalInt struct{ v **int }

func (o optionalInt) String() string { return "" }

func (o optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*o.v = &n
	return nil
}

type optionalBool struct{ v **bool }

func (o optionalBool) String() string   { return "" }
func (o optionalBool) IsBoolFlag() bool { return true }

func (o optionalBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*o.v = &b
	return nil
}

type overrides struct {
	uri     string
	path    string
	timeout time.Duration
	query   movie.Query
}

func (o *overrides) register(fs *flag.FlagSet) {
	fs.StringVar(&o.uri, "uri", "", "Base URI of the movie service (default from ENDPOINT_URI)")
	fs.StringVar(&o.path, "path", "", "Raw path and query, used verbatim")
	fs.DurationVar(&o.timeout, "timeout", -1, "Request timeout, 0 disables (default from ENDPOINT_TIMEOUT)")
	fs.Var(optionalInt{&o.query.StartingWithinDays}, "days", "Only movies starting within this many days")
	fs.Var(optionalBool{&o.query.IMDBData}, "imdb", "Include IMDb data")
	fs.Var(optionalInt{&o.query.TheatreID}, "theatre", "Only movies shown in this theatre")
	fs.Var(optionalBool{&o.query.ShowTimes}, "showtimes", "Include show times")
}

// apply folds the flags into cfg. -path wins; any query flag replaces a configured MOVIES_PATH.
func (o *overrides) apply(cfg *config.Config) {
	if o.uri != "" {
		cfg.Endpoint.URI = o.uri
	}
	if o.timeout >= 0 {
		cfg.Endpoint.Timeout = o.timeout
	}
	if o.path != "" {
		cfg.Movies.Path = o.path
		return
	}

	q := o.query
	if q.StartingWithinDays == nil && q.IMDBData == nil && q.TheatreID == nil && q.ShowTimes == nil {
		return
	}
	cfg.Movies.Path = ""
	if q.StartingWithinDays != nil {
		cfg.Movies.StartingWithinDays = q.StartingWithinDays
	}
	if q.IMDBData != nil {
		cfg.Movies.IMDBData = q.IMDBData
	}
	if q.TheatreID != nil {
		cfg.Movies.TheatreID = q.TheatreID
	}
	if q.ShowTimes != nil {
		cfg.Movies.ShowTimes = q.ShowTimes
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("moviefetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o overrides
	o.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "cannot load config: %v\n", err)
		return 1
	}
	o.apply(cfg)

	log, err := logger.New(logger.Options{Debug: cfg.Debug, Output: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "cannot init logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	endpoint := cfg.MoviesEndpoint()
	fmt.Fprintln(stdout, endpoint.URL())

	movies, err := fetchMovies(ctx, endpoint, cfg.Endpoint.Timeout, log)
	if err != nil {
		log.Errorw("fetch failed", "url", endpoint.URL(), "error", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(movies); err != nil {
		log.Errorw("cannot write movies", "error", err)
		return 1
	}

	log.Infow("fetch completed", "movies", len(movies))
	return 0
}

func fetchMovies(ctx context.Context, endpoint movie.Endpoint, timeout time.Duration, log *zap.SugaredLogger) ([]json.RawMessage, error) {
	var fetchErr error
	controller := movie.NewController(
		httpclient.NewItemsModel(endpoint,
			httpclient.WithTimeout(timeout),
			httpclient.WithLogger(log),
		),
		movie.WithReporter(func(err error) { fetchErr = err }),
	)

	<-controller.Init(ctx)

	view := controller.Snapshot()
	if view.State != movie.StateLoaded {
		return nil, fetchErr
	}
	return view.Movies, nil
}
