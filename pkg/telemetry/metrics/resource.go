package metrics

import (
	"vanet-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ResourceMetrics tracks external document loading.
//
// Metrics:
//   - vanet_saturn_resource_loads_total: Document loads by format and status
//   - vanet_saturn_resource_bytes: Size distribution of loaded documents
//   - vanet_saturn_resource_cache_hits_total: Documents served from cache
type ResourceMetrics struct {
	// Document load counter by format and status
	loadsTotal *prometheus.CounterVec

	// Document size distribution
	bytes prometheus.Histogram

	// Cache hit counter
	cacheHitsTotal prometheus.Counter
}

// NewResourceMetrics creates and registers resource metrics with the
// provided registry.
func NewResourceMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResourceMetrics {
	rm := &ResourceMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resource_loads_total",
				Help:      "Total number of external document loads",
			},
			[]string{"format", "status"},
		),

		bytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resource_bytes",
				Help:      "Size in bytes of loaded external documents",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),

		cacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resource_cache_hits_total",
				Help:      "Total number of documents served from the resource cache",
			},
		),
	}

	registry.MustRegister(
		rm.loadsTotal,
		rm.bytes,
		rm.cacheHitsTotal,
	)

	return rm
}

// RecordLoad records an external document load.
func (rm *ResourceMetrics) RecordLoad(format, status string, bytes int64) {
	rm.loadsTotal.WithLabelValues(format, status).Inc()
	if status == "ok" {
		rm.bytes.Observe(float64(bytes))
	}
}

// RecordCacheHit records a document served from the resource cache.
func (rm *ResourceMetrics) RecordCacheHit() {
	rm.cacheHitsTotal.Inc()
}
