package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks checkout outcomes.
type CheckoutMetrics struct {
	ordersCreated prometheus.Counter
	failures      *prometheus.CounterVec
	splitSize     prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders materialized by successful checkouts.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkouts rejected or aborted, by reason.",
	}, []string{"reason"})
	splitSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_split_size",
		Help:    "Number of vendor orders produced per checkout.",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})
	reg.MustRegister(ordersCreated, failures, splitSize)
	return &CheckoutMetrics{
		ordersCreated: ordersCreated,
		failures:      failures,
		splitSize:     splitSize,
	}
}

// AddOrdersCreated records count orders created by one checkout.
func (c *CheckoutMetrics) AddOrdersCreated(count int) {
	if c == nil || c.ordersCreated == nil {
		return
	}
	c.ordersCreated.Add(float64(count))
	if c.splitSize != nil {
		c.splitSize.Observe(float64(count))
	}
}

// IncFailure increments the failure counter for the given reason.
func (c *CheckoutMetrics) IncFailure(reason string) {
	if c == nil || c.failures == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	c.failures.WithLabelValues(reason).Inc()
}
