package sinks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/progress"
)

// PrometheusSink exports the progress counters as gauges. It owns its
// collectors and registers them against the supplied registry.
type PrometheusSink struct {
	completed prometheus.Gauge
	total     prometheus.Gauge
}

// NewPrometheusSink registers the collectors. A nil registry falls back to
// the default registerer.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		completed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "papers_requests_completed",
			Help: "Fetches that reached a successful terminal state.",
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "papers_requests_scheduled",
			Help: "Fetches scheduled so far; grows as the request graph is discovered.",
		}),
	}
	for _, c := range []prometheus.Collector{s.completed, s.total} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Observe copies the snapshot into the gauges.
func (s *PrometheusSink) Observe(snap progress.Snapshot) {
	s.completed.Set(float64(snap.Completed))
	s.total.Set(float64(snap.Total))
}
