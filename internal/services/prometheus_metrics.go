package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricSeedRuns      = "seed_runs"
	MetricSeedRecords   = "seed_records"
	MetricSeedDuration  = "seed"
	MetricQueryFailures = "query_failures"

	OperationList       = "list"
	OperationStatistics = "statistics"
	OperationBarChart   = "bar_chart"
	OperationPieChart   = "pie_chart"
	OperationCombined   = "combined"
)

type PrometheusMetrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	queryDuration       *prometheus.HistogramVec
	queryFailures       *prometheus.CounterVec
	seedRuns            *prometheus.CounterVec
	seedDuration        prometheus.Histogram
	seedRecords         prometheus.Gauge
}

// NewPrometheusMetrics registers every collector on reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_query_duration_milliseconds",
				Help:    "Duration of analytics store queries in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		queryFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_query_failures_total",
				Help: "Total number of failed analytics queries",
			},
			[]string{"operation"},
		),
		seedRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_seed_runs_total",
				Help: "Total number of seed runs by outcome",
			},
			[]string{"outcome"},
		),
		seedDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analytics_seed_duration_seconds",
				Help:    "Seed run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		seedRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "analytics_seed_records",
				Help: "Number of records loaded by the last successful seed",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricSeedRuns:
		if outcome := tags["outcome"]; outcome != "" {
			m.seedRuns.WithLabelValues(outcome).Inc()
		}
	case MetricQueryFailures:
		if operation := tags["operation"]; operation != "" {
			m.queryFailures.WithLabelValues(operation).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricSeedDuration:
		m.seedDuration.Observe(duration.Seconds())
	case OperationList, OperationStatistics, OperationBarChart, OperationPieChart, OperationCombined:
		m.queryDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricSeedRecords:
		m.seedRecords.Set(value)
	}
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
