// Package metrics exposes Prometheus collectors for the scraper.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fetchesTotal         *prometheus.CounterVec
	fetchRetriesTotal    prometheus.Counter
	fetchDurationSeconds *prometheus.HistogramVec
	inflightFetches      prometheus.Gauge

	once sync.Once
)

// Init registers the collectors against the default registry. It is safe to
// call multiple times.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papers_fetches_total",
				Help: "Total page fetches, labeled by kind (listing, paper, author) and outcome.",
			},
			[]string{"kind", "outcome"},
		)

		fetchRetriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "papers_fetch_retries_total",
				Help: "Total fetch attempts repeated after a connection-level failure.",
			},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "papers_fetch_duration_seconds",
				Help:    "Histogram of fetch latencies, labeled by kind.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"kind"},
		)

		inflightFetches = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "papers_inflight_fetches",
				Help: "Number of fetches currently holding an admission permit.",
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetch records the outcome and latency of one terminal fetch.
func ObserveFetch(kind, outcome string, duration time.Duration) {
	if fetchesTotal == nil {
		return
	}
	fetchesTotal.WithLabelValues(kind, outcome).Inc()
	fetchDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// ObserveRetry counts one repeated fetch attempt.
func ObserveRetry() {
	if fetchRetriesTotal == nil {
		return
	}
	fetchRetriesTotal.Inc()
}

// IncInflight increments the in-flight permit gauge.
func IncInflight() {
	if inflightFetches == nil {
		return
	}
	inflightFetches.Inc()
}

// DecInflight decrements the in-flight permit gauge.
func DecInflight() {
	if inflightFetches == nil {
		return
	}
	inflightFetches.Dec()
}
