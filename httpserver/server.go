package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"clapperboard/errs"
	"clapperboard/movie"
	"clapperboard/pkg/config"
	"clapperboard/pkg/logger"
	"clapperboard/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Logger *zap.SugaredLogger

	// BaseContext is handed to fetches started by the server. Cancel it to
	// abort them on shutdown.
	BaseContext context.Context

	MovieService movie.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		AllowOrigins: []string{"*"},
		Logger:       logger.NOOPLogger,
		BaseContext:  context.Background(),
	}
	if cfg.Port == 0 {
		s.Addr = ":8080"
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterMovieRoutes(api)

	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) RegisterMetricsRoutes() {
	s.Router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to appropriate HTTP status codes
func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		case errs.EUNAVAILABLE:
			code = http.StatusServiceUnavailable
			message = errs.ErrorMessage(err)
		}
	}

	s.Logger.Errorw(err.Error(),
		"request_id", requestID(c),
		"status", code,
	)
	if code >= http.StatusInternalServerError {
		sentry.WithContext(c).Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := writeError(c, code, message, "", err); err != nil {
			s.Logger.Errorw("write error response failed", "error", err)
		}
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
