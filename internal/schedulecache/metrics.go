package schedulecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks cache effectiveness and upstream pressure.
type Metrics struct {
	Lookups       *prometheus.CounterVec
	UpstreamCalls prometheus.Counter
	RetriesSpent  prometheus.Counter
}

// NewMetrics registers cache metrics on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimvet_schedule_cache_lookups_total",
			Help: "Schedule cache lookups by result",
		}, []string{"result"}), // result: "hit", "negative_hit", "miss"
		UpstreamCalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimvet_schedule_cache_upstream_calls_total",
			Help: "Calls made to the Provider Details service",
		}),
		RetriesSpent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimvet_schedule_cache_retries_total",
			Help: "Retry attempts consumed on transient Provider Details failures",
		}),
	}
}

// RecordLookup counts one lookup outcome.
func (m *Metrics) RecordLookup(result string) {
	if m != nil {
		m.Lookups.WithLabelValues(result).Inc()
	}
}

// RecordUpstreamCall counts one Provider Details call.
func (m *Metrics) RecordUpstreamCall() {
	if m != nil {
		m.UpstreamCalls.Inc()
	}
}

// RecordRetry counts one consumed retry attempt.
func (m *Metrics) RecordRetry() {
	if m != nil {
		m.RetriesSpent.Inc()
	}
}
