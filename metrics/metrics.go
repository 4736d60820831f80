// Package metrics exposes Prometheus instrumentation for the parts of
// the system with network-scale latency, mainly contract calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Ledger counts contract interactions and tracks their latency per
// operation. All methods are nil-safe so callers can run without a
// registry (tests, one-off tools).
type Ledger struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewLedger(reg prometheus.Registerer) (*Ledger, error) {
	l := &Ledger{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voting",
			Subsystem: "ledger",
			Name:      "calls_total",
			Help:      "Contract calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voting",
			Subsystem: "ledger",
			Name:      "call_duration_seconds",
			Help:      "Contract call latency by operation.",
			// Block confirmation takes seconds, not milliseconds.
			Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{l.calls, l.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Observe records one finished contract call.
func (l *Ledger) Observe(op string, start time.Time, err error) {
	if l == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	l.calls.WithLabelValues(op, outcome).Inc()
	l.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
