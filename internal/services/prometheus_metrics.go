package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsProcessed *prometheus.CounterVec
	transactionsRejected  *prometheus.CounterVec
	storeFailures         *prometheus.CounterVec
	notPermitted          *prometheus.CounterVec
	pipelineDuration      prometheus.Histogram
	authEvents            *prometheus.CounterVec
	activeSessions        prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_processed_total",
				Help: "Total number of transactions stored",
			},
			[]string{"operation", "type"},
		),
		transactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_rejected_total",
				Help: "Total number of transactions rejected by validation",
			},
			[]string{"operation"},
		),
		storeFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_store_failures_total",
				Help: "Total number of store operations that could not be confirmed",
			},
			[]string{"operation"},
		),
		notPermitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_not_permitted_total",
				Help: "Total number of mutations rejected for ownership reasons",
			},
			[]string{"operation"},
		),
		pipelineDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_pipeline_duration_milliseconds",
				Help:    "Transaction pipeline duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		authEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		activeSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_sessions_total",
				Help: "Current number of live sessions",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]

	switch name {
	case "transaction.processed":
		m.transactionsProcessed.WithLabelValues(operation, tags["type"]).Inc()
	case "transaction.rejected":
		m.transactionsRejected.WithLabelValues(operation).Inc()
	case "transaction.store_failed":
		m.storeFailures.WithLabelValues(operation).Inc()
	case "transaction.not_permitted":
		m.notPermitted.WithLabelValues(operation).Inc()
	case "auth.event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authEvents.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.pipeline":
		m.pipelineDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "sessions.active":
		m.activeSessions.Set(value)
	}
}
