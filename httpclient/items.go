package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"clapperboard/errs"
	"clapperboard/movie"
	"clapperboard/pkg/logger"
	"clapperboard/pkg/metrics"

	"go.uber.org/zap"
)

// maxErrorBody bounds how much of a failed response ends up in the error message.
const maxErrorBody = 512

type Option func(m *ItemsModel)

func WithHTTPClient(c *http.Client) Option {
	return func(m *ItemsModel) {
		m.client = c
	}
}

// WithTimeout sets the request timeout. Zero means no timeout. The client
// passed to WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(m *ItemsModel) {
		m.timeout = &d
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *ItemsModel) {
		m.logger = l
	}
}

// ItemsModel fetches the movie list from a fixed endpoint.
type ItemsModel struct {
	endpoint movie.Endpoint
	client   *http.Client
	timeout  *time.Duration
	logger   *zap.SugaredLogger
}

func NewItemsModel(endpoint movie.Endpoint, options ...Option) *ItemsModel {
	m := &ItemsModel{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   logger.NOOPLogger,
	}
	for _, fn := range options {
		fn(m)
	}
	if m.client == nil {
		m.client = &http.Client{}
	}
	if m.timeout != nil {
		client := *m.client
		client.Timeout = *m.timeout
		m.client = &client
	}
	return m
}

func (m *ItemsModel) Endpoint() movie.Endpoint {
	return m.endpoint
}

// FetchAll issues one GET against the endpoint and returns the body of a 2xx reply.
// Transport failures and other statuses are returned as EUNAVAILABLE errors.
func (m *ItemsModel) FetchAll(ctx context.Context) (movie.Response, error) {
	const op = "ItemsModel.FetchAll"

	start := time.Now()
	resp, err := m.doRequest(ctx)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.StatusError).Inc()
		return movie.Response{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.FetchTotal.WithLabelValues(metrics.StatusOK).Inc()
	m.logger.Debugw("movie list fetched",
		"url", m.endpoint.URL(),
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
	)
	return resp, nil
}

func (m *ItemsModel) doRequest(ctx context.Context) (movie.Response, error) {
	url := m.endpoint.URL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return movie.Response{}, errs.Errorf(errs.EINVALID, "invalid endpoint %q: %v", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return movie.Response{}, errs.Errorf(errs.EUNAVAILABLE, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if !IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return movie.Response{}, errs.Errorf(errs.EUNAVAILABLE,
			"GET %s: bad status %d, response: %s", url, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return movie.Response{}, errs.Errorf(errs.EUNAVAILABLE, "GET %s: read body: %v", url, err)
	}

	return movie.Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// IsSuccess reports whether statusCode is 2xx.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode <= http.StatusIMUsed
}
