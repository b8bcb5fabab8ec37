package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records quote and confirmation activity.
type PricingMetrics struct {
	quoteDuration *prometheus.HistogramVec
	quotes        *prometheus.CounterVec
	confirmations *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Duration of quote resolution in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"product_type"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Quotes resolved, by product type and active model.",
	}, []string{"product_type", "model"})
	confirmations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_line_items_confirmed_total",
		Help: "Line items confirmed onto invoices.",
	}, []string{"product_type"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_confirm_rejections_total",
		Help: "Confirm attempts rejected before persistence.",
	}, []string{"reason"})
	reg.MustRegister(quoteDuration, quotes, confirmations, rejections)
	return &PricingMetrics{
		quoteDuration: quoteDuration,
		quotes:        quotes,
		confirmations: confirmations,
		rejections:    rejections,
	}
}

// ObserveQuoteDuration records how long a quote took to resolve.
func (m *PricingMetrics) ObserveQuoteDuration(productType string, duration time.Duration) {
	if m == nil || m.quoteDuration == nil {
		return
	}
	m.quoteDuration.WithLabelValues(normalizeLabel(productType)).Observe(duration.Seconds())
}

// IncQuote counts one resolved quote.
func (m *PricingMetrics) IncQuote(productType, model string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(productType), normalizeLabel(model)).Inc()
}

// IncConfirmation counts one confirmed line item.
func (m *PricingMetrics) IncConfirmation(productType string) {
	if m == nil || m.confirmations == nil {
		return
	}
	m.confirmations.WithLabelValues(normalizeLabel(productType)).Inc()
}

// IncRejection counts one rejected confirm attempt.
func (m *PricingMetrics) IncRejection(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
