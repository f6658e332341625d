package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records outcomes and latency for checkout attempts.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	attempts *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejections_total",
		Help: "Checkout attempts rejected before submission, by reason.",
	}, []string{"reason"})
	reg.MustRegister(duration, attempts, rejected)
	return &CheckoutMetrics{
		duration: duration,
		attempts: attempts,
		rejected: rejected,
	}
}

// ObserveAttempt records one completed attempt with its outcome.
func (c *CheckoutMetrics) ObserveAttempt(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	label := normalizeLabel(outcome)
	if c.duration != nil {
		c.duration.WithLabelValues(label).Observe(elapsed.Seconds())
	}
	if c.attempts != nil {
		c.attempts.WithLabelValues(label).Inc()
	}
}

// IncRejected counts a local precondition failure.
func (c *CheckoutMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	label := strings.TrimSpace(strings.ToLower(value))
	if label == "" {
		return "unknown"
	}
	return strings.ReplaceAll(label, " ", "_")
}
