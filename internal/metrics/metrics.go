// Package metrics exposes Prometheus instrumentation for settlement runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts settlement computations and their outcomes.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	settlements  *prometheus.CounterVec
	transactions prometheus.Histogram
	rounding     prometheus.Counter
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripsplit",
			Name:      "settlements_computed_total",
			Help:      "Settlement plans computed, by source (stored trip or inline snapshot) and result.",
		}, []string{"source", "result"}),
		transactions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripsplit",
			Name:      "settlement_transactions",
			Help:      "Number of transfers in a computed settlement plan.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
		rounding: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripsplit",
			Name:      "rounding_inconsistencies_total",
			Help:      "Settlement plans that left a non-negligible residual.",
		}),
	}
	reg.MustRegister(r.settlements, r.transactions, r.rounding)
	return r
}

// ObserveSettlement records a successful plan with n transfers.
func (r *Recorder) ObserveSettlement(source string, n int) {
	if r == nil {
		return
	}
	r.settlements.WithLabelValues(source, "ok").Inc()
	r.transactions.Observe(float64(n))
}

// ObserveInvalid records a rejected snapshot.
func (r *Recorder) ObserveInvalid(source string) {
	if r == nil {
		return
	}
	r.settlements.WithLabelValues(source, "invalid").Inc()
}

// ObserveRoundingInconsistency records a plan that failed its settlement check.
func (r *Recorder) ObserveRoundingInconsistency() {
	if r == nil {
		return
	}
	r.rounding.Inc()
}
