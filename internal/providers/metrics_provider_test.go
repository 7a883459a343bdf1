package providers

import (
	"testing"
	"time"

	"blogd/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func useFreshRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncRecordsDropped("posts")
	m.IncSelfHeals("posts")
	m.ObserveStoreWriteDuration("posts", time.Millisecond)
	m.IncBackupsTotal("success")
	m.ObserveBackupDuration(time.Millisecond)
	m.SetBackupsCount(3)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useFreshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	useFreshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf).(*MetricsProvider)

	m.IncRequestsTotal("GET /api/posts", 200)
	m.IncRequestsTotal("GET /api/posts", 404)
	m.ObserveRequestDuration("GET /api/posts", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncRecordsDropped("comments")
	m.IncRecordsDropped("comments")
	m.IncSelfHeals("posts")
	m.ObserveStoreWriteDuration("posts", time.Millisecond)
	m.IncBackupsTotal("success")
	m.ObserveBackupDuration(100 * time.Millisecond)
	m.SetBackupsCount(7)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.recordsDropped.WithLabelValues("comments")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.selfHeals.WithLabelValues("posts")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.backupsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.backupsCount))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
