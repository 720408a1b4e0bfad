package publisher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "supstonad/pkg/platform/audit"
)

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	EventsEmitted   *prometheus.CounterVec
	PersistFailures prometheus.Counter
	PersistDuration prometheus.Histogram
}

// NewMetrics registers the audit metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "supstonad_audit_events_emitted_total",
			Help: "Total number of audit events persisted, by category",
		}, []string{"category"}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "supstonad_audit_persist_failures_total",
			Help: "Total number of audit event persistence failures",
		}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "supstonad_audit_persist_duration_seconds",
			Help:    "Duration of synchronous audit writes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) IncEventsEmitted(category audit.EventCategory) {
	if m != nil {
		m.EventsEmitted.WithLabelValues(string(category)).Inc()
	}
}

func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) ObservePersistDuration(d time.Duration) {
	if m != nil {
		m.PersistDuration.Observe(d.Seconds())
	}
}
