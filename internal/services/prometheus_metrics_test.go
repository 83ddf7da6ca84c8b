package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_RecordsByName(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.IncrementCounter(MetricSeedRuns, map[string]string{"outcome": "success"})
	m.IncrementCounter(MetricSeedRuns, map[string]string{})
	m.IncrementCounter(MetricQueryFailures, map[string]string{"operation": OperationStatistics})
	m.IncrementCounter("unknown", nil)
	m.RecordGauge(MetricSeedRecords, 42, nil)
	m.RecordProcessingTime(OperationBarChart, 3*time.Millisecond)
	m.RecordProcessingTime(MetricSeedDuration, time.Second)
	m.RecordHTTPRequest("GET", "/api/statistics", 200, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.seedRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queryFailures.WithLabelValues(OperationStatistics)))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.seedRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/statistics", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.queryDuration))
}

func TestPrometheusMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusMetrics(prometheus.NewRegistry())
		NewPrometheusMetrics(prometheus.NewRegistry())
	})
}
