package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"supstonad/internal/revurdering/utfall"
)

// Metrics provides observability for the revurdering module.
type Metrics struct {
	// Transitions by operation and result
	Transitions *prometheus.CounterVec

	// Unsupported outcomes caught at attestering, by flag
	UtfallStottesIkke *prometheus.CounterVec

	// Collaborator latencies by port
	EksternLatency *prometheus.HistogramVec

	// Open revurderinger avsluttet or iverksatt
	Avsluttet prometheus.Counter
}

// New registers the revurdering metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "supstonad_revurdering_transitions_total",
			Help: "Revurdering operations by operation and result",
		}, []string{"operation", "result"}), // result: "ok", error code

		UtfallStottesIkke: f.NewCounterVec(prometheus.CounterOpts{
			Name: "supstonad_revurdering_utfall_stottes_ikke_total",
			Help: "Attestering attempts rejected by unsupported outcome flag",
		}, []string{"utfall"}),

		EksternLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supstonad_revurdering_ekstern_duration_seconds",
			Help:    "Duration of calls to external collaborators by port",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"port"}), // port: "beregner", "simulator", "utbetaler", "brev", "oppgave", "person", "vedtak"

		Avsluttet: f.NewCounter(prometheus.CounterOpts{
			Name: "supstonad_revurdering_avsluttet_total",
			Help: "Revurderinger closed without iverksetting",
		}),
	}
}

// IncrementTransition records the result of a service operation.
func (m *Metrics) IncrementTransition(operation, result string) {
	if m != nil {
		m.Transitions.WithLabelValues(operation, result).Inc()
	}
}

func (m *Metrics) IncrementUtfallStottesIkke(flagg []utfall.Utfall) {
	if m == nil {
		return
	}
	for _, u := range flagg {
		m.UtfallStottesIkke.WithLabelValues(string(u)).Inc()
	}
}

// ObserveEkstern records the duration of a collaborator call.
func (m *Metrics) ObserveEkstern(port string, d time.Duration) {
	if m != nil {
		m.EksternLatency.WithLabelValues(port).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementAvsluttet() {
	if m != nil {
		m.Avsluttet.Inc()
	}
}
