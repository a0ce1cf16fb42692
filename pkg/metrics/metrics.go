package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clapperboard_fetch_total",
			Help: "Count of movie list fetches by outcome",
		},
		[]string{"status"},
	)
	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clapperboard_fetch_duration_seconds",
			Help:    "Time taken by a movie list fetch",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
	)
	MoviesBound = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clapperboard_movies_bound",
			Help: "Number of movies in the current view state",
		},
	)
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Register adds the collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		FetchTotal,
		FetchDuration,
		MoviesBound,
	)
}
