package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IntakeMetrics records order-intake outcomes.
type IntakeMetrics struct {
	received      *prometheus.CounterVec
	emailFailures prometheus.Counter
	duration      prometheus.Histogram
}

// Outcome labels for the received counter.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeStoreFailed = "store_failed"
)

// NewIntakeMetrics registers the intake metrics on the provided registerer.
func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	if reg == nil {
		return &IntakeMetrics{}
	}
	received := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_received_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	emailFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipt_email_failures_total",
		Help: "Receipt emails that could not be delivered.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_intake_duration_seconds",
		Help:    "End-to-end duration of one order intake.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(received, emailFailures, duration)
	return &IntakeMetrics{
		received:      received,
		emailFailures: emailFailures,
		duration:      duration,
	}
}

// IncReceived increments the outcome counter.
func (m *IntakeMetrics) IncReceived(outcome string) {
	if m == nil || m.received == nil {
		return
	}
	m.received.WithLabelValues(outcome).Inc()
}

// IncEmailFailure increments the soft-failure counter.
func (m *IntakeMetrics) IncEmailFailure() {
	if m == nil || m.emailFailures == nil {
		return
	}
	m.emailFailures.Inc()
}

// ObserveDuration records the duration of one intake.
func (m *IntakeMetrics) ObserveDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
