// Package metrics provides observability for validation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the validation engine. All
// record methods are safe on a nil receiver so wiring metrics stays
// optional.
type Metrics struct {
	Runs        *prometheus.CounterVec
	RunDuration prometheus.Histogram
	Findings    *prometheus.CounterVec
}

// New registers the validation metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimvet_validation_runs_total",
			Help: "Completed validation runs by outcome",
		}, []string{"outcome"}), // outcome: "succeeded", "failed", "halted", "error"
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "claimvet_validation_run_duration_seconds",
			Help:    "Duration of a full validation run including write-back",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Findings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimvet_validation_findings_total",
			Help: "Validation findings recorded, by code and source",
		}, []string{"code", "source"}),
	}
}

// RecordRun counts one completed run and observes its duration.
func (m *Metrics) RecordRun(outcome string, d time.Duration) {
	if m != nil {
		m.Runs.WithLabelValues(outcome).Inc()
		m.RunDuration.Observe(d.Seconds())
	}
}

// RecordFinding counts one finding.
func (m *Metrics) RecordFinding(code, source string) {
	if m != nil {
		m.Findings.WithLabelValues(code, source).Inc()
	}
}
