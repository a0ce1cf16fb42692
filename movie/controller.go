package movie

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"clapperboard/errs"
	"clapperboard/pkg/logger"
	"clapperboard/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// View is what the presentation layer renders.
type View struct {
	State      State             `json:"state"`
	Movies     []json.RawMessage `json:"movies"`
	Error      string            `json:"error,omitempty"`
	FetchCount int               `json:"fetch_count"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Fetcher retrieves the raw movie list from the remote service.
type Fetcher interface {
	FetchAll(ctx context.Context) (Response, error)
}

type Service interface {
	Init(ctx context.Context) <-chan struct{}
	Snapshot() View
}

type Option func(c *Controller)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithReporter registers a callback for failed fetches, e.g. an error tracker.
func WithReporter(fn func(error)) Option {
	return func(c *Controller) {
		c.report = fn
	}
}

// Controller binds the remote movie list to view state. Every Init issues
// exactly one fetch; at most one fetch is in flight at a time.
type Controller struct {
	fetcher Fetcher
	logger  *zap.SugaredLogger
	report  func(error)

	mu       sync.RWMutex
	view     View
	inflight chan struct{}
}

func NewController(f Fetcher, options ...Option) *Controller {
	c := &Controller{
		fetcher: f,
		logger:  logger.NOOPLogger,
		report:  func(error) {},
		view:    View{State: StateLoading},
	}
	for _, fn := range options {
		fn(c)
	}
	return c
}

// Init starts a fetch and returns a channel that is closed once its result
// has been bound. Calling Init while a fetch is running returns the channel
// of the running fetch.
func (c *Controller) Init(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight != nil {
		return c.inflight
	}

	done := make(chan struct{})
	c.inflight = done
	c.view.State = StateLoading
	c.view.Movies = nil
	c.view.Error = ""
	c.view.FetchCount++

	go c.fetch(ctx, uuid.NewString(), done)
	return done
}

func (c *Controller) fetch(ctx context.Context, fetchID string, done chan struct{}) {
	defer close(done)

	log := c.logger.With("fetch_id", fetchID)
	log.Debugw("fetching movies")

	resp, err := c.fetcher.FetchAll(ctx)
	var movies []json.RawMessage
	if err == nil {
		movies, err = resp.Movies()
	}

	c.bind(movies, err)

	if err != nil {
		log.Errorw("fetch movies failed", "error", err, "code", errs.ErrorCode(err))
		c.report(err)
		return
	}
	log.Infow("movies loaded", "count", len(movies))
}

func (c *Controller) bind(movies []json.RawMessage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight = nil
	c.view.UpdatedAt = time.Now()
	if err != nil {
		c.view.State = StateFailed
		c.view.Error = errs.ErrorMessage(err)
		return
	}
	c.view.State = StateLoaded
	c.view.Movies = movies
	metrics.MoviesBound.Set(float64(len(movies)))
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := c.view
	if c.view.Movies != nil {
		v.Movies = make([]json.RawMessage, len(c.view.Movies))
		copy(v.Movies, c.view.Movies)
	}
	return v
}
