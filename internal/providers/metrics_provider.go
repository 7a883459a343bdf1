package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"blogd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRecordsDropped(collection string)
	IncSelfHeals(collection string)
	ObserveStoreWriteDuration(collection string, duration time.Duration)
	IncBackupsTotal(result string)
	ObserveBackupDuration(duration time.Duration)
	SetBackupsCount(count int)
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	recordsDropped     *prometheus.CounterVec
	selfHeals          *prometheus.CounterVec
	storeWriteDuration *prometheus.HistogramVec
	backupsTotal       *prometheus.CounterVec
	backupDuration     prometheus.Histogram
	backupsCount       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRecordsDropped(collection string) {
	m.recordsDropped.WithLabelValues(collection).Inc()
}

func (m *MetricsProvider) IncSelfHeals(collection string) {
	m.selfHeals.WithLabelValues(collection).Inc()
}

func (m *MetricsProvider) ObserveStoreWriteDuration(collection string, duration time.Duration) {
	m.storeWriteDuration.WithLabelValues(collection).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncBackupsTotal(result string) {
	m.backupsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) ObserveBackupDuration(duration time.Duration) {
	m.backupDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetBackupsCount(count int) {
	m.backupsCount.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blogd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blogd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		recordsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_store_records_dropped_total",
			Help: "Records dropped on read because they failed validation",
		}, []string{"collection"}),

		selfHeals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_store_self_heals_total",
			Help: "Collection files reinitialized after being found missing or corrupt",
		}, []string{"collection"}),

		storeWriteDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogd_store_write_duration_seconds",
			Help:    "Duration of collection writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection"}),

		backupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_backups_total",
			Help: "Backups attempted, by result",
		}, []string{"result"}),

		backupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogd_backup_duration_seconds",
			Help:    "Duration of backup creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		backupsCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "blogd_backups_count",
			Help: "Number of rotating backups on disk",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                    {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)    {}
func (n *noopMetrics) IncCacheHits()                                       {}
func (n *noopMetrics) IncCacheMisses()                                     {}
func (n *noopMetrics) IncRecordsDropped(_ string)                          {}
func (n *noopMetrics) IncSelfHeals(_ string)                               {}
func (n *noopMetrics) ObserveStoreWriteDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncBackupsTotal(_ string)                            {}
func (n *noopMetrics) ObserveBackupDuration(_ time.Duration)               {}
func (n *noopMetrics) SetBackupsCount(_ int)                               {}
