package metrics

import (
	"time"

	"vanet-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ResolutionMetrics tracks scenario loading and parameter resolution.
//
// Metrics:
//   - vanet_saturn_scenario_loads_total: Scenario loads by status
//   - vanet_saturn_scenario_sections: Sections in the last loaded scenario
//   - vanet_saturn_load_duration_seconds: Scenario load latency
//   - vanet_saturn_resolutions_total: Parameter resolutions by parameter and outcome
//   - vanet_saturn_resolve_duration_seconds: Resolution latency
//   - vanet_saturn_memo_hits_total: Resolutions served from the memo table
type ResolutionMetrics struct {
	// Scenario load counter by status
	loadsTotal *prometheus.CounterVec

	// Sections in the most recently loaded scenario
	sections prometheus.Gauge

	// Scenario load latency
	loadDuration prometheus.Histogram

	// Resolution counter by parameter and outcome
	resolutionsTotal *prometheus.CounterVec

	// Resolution latency
	resolveDuration prometheus.Histogram

	// Memoized resolution counter
	memoHitsTotal prometheus.Counter
}

// NewResolutionMetrics creates and registers resolution metrics with the
// provided registry.
func NewResolutionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResolutionMetrics {
	rm := &ResolutionMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "scenario_loads_total",
				Help:      "Total number of scenario loads",
			},
			[]string{"status"},
		),

		sections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "scenario_sections",
				Help:      "Number of sections in the most recently loaded scenario",
			},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "load_duration_seconds",
				Help:      "Scenario load latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),

		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolutions_total",
				Help:      "Total number of parameter resolutions",
			},
			[]string{"parameter", "outcome"},
		),

		resolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolve_duration_seconds",
				Help:      "Parameter resolution latency in seconds",
				Buckets:   cfg.ResolveDurationBuckets,
			},
		),

		memoHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "memo_hits_total",
				Help:      "Total number of resolutions served from the memo table",
			},
		),
	}

	registry.MustRegister(
		rm.loadsTotal,
		rm.sections,
		rm.loadDuration,
		rm.resolutionsTotal,
		rm.resolveDuration,
		rm.memoHitsTotal,
	)

	return rm
}

// RecordLoad records a scenario load attempt.
func (rm *ResolutionMetrics) RecordLoad(status string, sections int, duration time.Duration) {
	rm.loadsTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		rm.sections.Set(float64(sections))
	}
	rm.loadDuration.Observe(duration.Seconds())
}

// RecordResolution records a single parameter resolution.
func (rm *ResolutionMetrics) RecordResolution(parameter, outcome string, duration time.Duration) {
	rm.resolutionsTotal.WithLabelValues(parameter, outcome).Inc()
	rm.resolveDuration.Observe(duration.Seconds())
}

// RecordMemoHit records a resolution served from the memo table.
func (rm *ResolutionMetrics) RecordMemoHit() {
	rm.memoHitsTotal.Inc()
}
