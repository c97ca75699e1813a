package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for the live transport.
type metrics struct {
	activeSessions prometheus.Gauge
	eventsTotal    *prometheus.CounterVec
	eventDuration  prometheus.Histogram
	framesSent     prometheus.Counter
	opsSent        prometheus.Counter
	wsErrors       *prometheus.CounterVec
	handlerPanics  prometheus.Counter
}

// Metrics on the default registerer are shared across servers: promauto
// panics on duplicate registration, and two servers in one process should
// aggregate anyway. A custom registerer gets its own instruments.
var (
	defaultMetrics     *metrics
	defaultMetricsOnce sync.Once
)

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil || reg == prometheus.Registerer(prometheus.DefaultRegisterer) {
		defaultMetricsOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(reg)
}

func buildMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "active_sessions",
			Help:      "Number of connected live sessions",
		}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total client events processed, by event type",
		}, []string{"type"}),

		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "event_duration_seconds",
			Help:      "Event dispatch duration in seconds, including re-render",
			Buckets:   prometheus.DefBuckets,
		}),

		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "frames_sent_total",
			Help:      "Total op frames sent to clients",
		}),

		opsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "ops_sent_total",
			Help:      "Total wire operations sent to clients",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"}),

		handlerPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "axon",
			Subsystem: "live",
			Name:      "handler_panics_total",
			Help:      "Total panics recovered from event handlers",
		}),
	}
}
