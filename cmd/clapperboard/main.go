package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clapperboard/httpclient"
	"clapperboard/httpserver"
	"clapperboard/movie"
	"clapperboard/pkg/config"
	"clapperboard/pkg/logger"
	"clapperboard/pkg/metrics"
	"clapperboard/pkg/sentry"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Path: cfg.LogPath, Debug: cfg.Debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Errorw("cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	metrics.Register(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint := cfg.MoviesEndpoint()
	items := httpclient.NewItemsModel(endpoint,
		httpclient.WithTimeout(cfg.Endpoint.Timeout),
		httpclient.WithLogger(log),
	)
	controller := movie.NewController(items,
		movie.WithLogger(log),
		movie.WithReporter(func(err error) {
			sentry.WithTags(map[string]string{"endpoint": endpoint.URL()}).Error(err)
		}),
	)

	log.Infow("fetching movies", "url", endpoint.URL())
	controller.Init(ctx)

	server := httpserver.Default(cfg)
	server.Logger = log
	server.BaseContext = ctx
	server.MovieService = controller

	go func() {
		log.Infow("server started", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
			sentry.Fatalf("server on %s stopped: %v", server.Addr, err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown failed", "error", err)
		sentry.Warningf("shutdown after %s failed: %v", shutdownTimeout, err)
	}
	view := controller.Snapshot()
	sentry.Infof("server stopped after %d fetches, last state %s", view.FetchCount, view.State)
	log.Info("server stopped")
}
