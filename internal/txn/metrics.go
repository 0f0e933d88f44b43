package txn

import "github.com/prometheus/client_golang/prometheus"

const (
	resultCommitted  = "committed"
	resultRejected   = "rejected"
	resultConflict   = "conflict"
	resultStoreError = "store_error"
)

type Metrics struct {
	attempts  *prometheus.CounterVec
	exhausted *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "flightres",
				Subsystem: "txn",
				Name:      "attempts_total",
				Help:      "Counter of transaction attempts by operation and result.",
			}, []string{"operation", "result"}),
		exhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "flightres",
				Subsystem: "txn",
				Name:      "retries_exhausted_total",
				Help:      "Counter of operations that failed on every attempt.",
			}, []string{"operation"}),
	}
	reg.MustRegister(m.attempts, m.exhausted)
	return m
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(op, result).Inc()
}

func (m *Metrics) exhaust(op string) {
	if m == nil {
		return
	}
	m.exhausted.WithLabelValues(op).Inc()
}
