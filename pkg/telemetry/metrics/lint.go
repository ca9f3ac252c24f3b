package metrics

import (
	"time"

	"vanet-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LintMetrics tracks lint passes and watch mode activity.
//
// Metrics:
//   - vanet_saturn_lints_total: Lint passes by result
//   - vanet_saturn_lint_findings: Findings per lint pass
//   - vanet_saturn_lint_duration_seconds: Lint latency
//   - vanet_saturn_watch_events_total: Filesystem events observed
//   - vanet_saturn_watch_reloads_total: Debounced re-lints triggered
type LintMetrics struct {
	// Lint pass counter by result
	lintsTotal *prometheus.CounterVec

	// Findings per pass
	findings prometheus.Histogram

	// Lint latency
	duration prometheus.Histogram

	// Filesystem event counter
	watchEventsTotal prometheus.Counter

	// Debounced reload counter
	watchReloadsTotal prometheus.Counter
}

// NewLintMetrics creates and registers lint metrics with the provided
// registry.
func NewLintMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LintMetrics {
	lm := &LintMetrics{
		lintsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lints_total",
				Help:      "Total number of lint passes",
			},
			[]string{"result"},
		),

		findings: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lint_findings",
				Help:      "Findings reported per lint pass",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lint_duration_seconds",
				Help:      "Lint pass latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),

		watchEventsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of filesystem events observed in watch mode",
			},
		),

		watchReloadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_reloads_total",
				Help:      "Total number of debounced re-lints triggered in watch mode",
			},
		),
	}

	registry.MustRegister(
		lm.lintsTotal,
		lm.findings,
		lm.duration,
		lm.watchEventsTotal,
		lm.watchReloadsTotal,
	)

	return lm
}

// RecordLint records a lint pass.
func (lm *LintMetrics) RecordLint(result string, findings int, duration time.Duration) {
	lm.lintsTotal.WithLabelValues(result).Inc()
	lm.findings.Observe(float64(findings))
	lm.duration.Observe(duration.Seconds())
}

// RecordWatchEvent records a filesystem event.
func (lm *LintMetrics) RecordWatchEvent() {
	lm.watchEventsTotal.Inc()
}

// RecordWatchReload records a debounced re-lint.
func (lm *LintMetrics) RecordWatchReload() {
	lm.watchReloadsTotal.Inc()
}
