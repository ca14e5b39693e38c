package metrics

import (
	"time"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "checkout"

// CheckoutMetrics records checkout results and processor call latency.
type CheckoutMetrics interface {
	RecordOutcome(outcome domain.Outcome)
	RecordRejection(reason string)
	RecordFailure(kind domain.ErrorKind)
	ObserveProcessorCall(operation string, duration time.Duration, err error)
}

type checkoutMetrics struct {
	log            *logger.Logger
	outcomes       *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	failures       *prometheus.CounterVec
	processorCalls *prometheus.HistogramVec
}

// NewCheckoutMetrics registers the checkout metrics on registry.
func NewCheckoutMetrics(registry *prometheus.Registry, log *logger.Logger) CheckoutMetrics {
	factory := promauto.With(registry)

	outcomes := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Classified checkout outcomes by type and code.",
		},
		[]string{"type", "code"},
	)

	rejections := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected checkout requests by reason.",
		},
		[]string{"reason"},
	)

	failures := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed checkouts by error kind.",
		},
		[]string{"kind"},
	)

	processorCalls := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processor_call_duration_seconds",
			Help:      "Payment processor call latency by operation and result.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms .. 6.4s
		},
		[]string{"operation", "result"},
	)

	return &checkoutMetrics{
		log:            log,
		outcomes:       outcomes,
		rejections:     rejections,
		failures:       failures,
		processorCalls: processorCalls,
	}
}

func (m *checkoutMetrics) RecordOutcome(outcome domain.Outcome) {
	m.outcomes.WithLabelValues(string(outcome.Type), outcome.Code).Inc()
}

func (m *checkoutMetrics) RecordRejection(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *checkoutMetrics) RecordFailure(kind domain.ErrorKind) {
	m.failures.WithLabelValues(kind.String()).Inc()
}

// ObserveProcessorCall records one processor call.
func (m *checkoutMetrics) ObserveProcessorCall(operation string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.processorCalls.WithLabelValues(operation, result).Observe(duration.Seconds())
}
