package metrics

import (
	"vanet-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CampaignMetrics tracks campaign generation and the run ledger.
//
// Metrics:
//   - vanet_saturn_runs_prepared_total: Runs emitted by campaign generation
//   - vanet_saturn_ledger_writes_total: Run record writes by status
//   - vanet_saturn_ledger_pruned_total: Records deleted by retention
type CampaignMetrics struct {
	// Prepared run counter by study
	runsPreparedTotal *prometheus.CounterVec

	// Ledger write counter by status
	ledgerWritesTotal *prometheus.CounterVec

	// Pruned record counter
	prunedTotal prometheus.Counter
}

// NewCampaignMetrics creates and registers campaign metrics with the
// provided registry.
func NewCampaignMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CampaignMetrics {
	cm := &CampaignMetrics{
		runsPreparedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_prepared_total",
				Help:      "Total number of runs emitted by campaign generation",
			},
			[]string{"study"},
		),

		ledgerWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ledger_writes_total",
				Help:      "Total number of run record writes to the ledger",
			},
			[]string{"status"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ledger_pruned_total",
				Help:      "Total number of run records deleted by retention",
			},
		),
	}

	registry.MustRegister(
		cm.runsPreparedTotal,
		cm.ledgerWritesTotal,
		cm.prunedTotal,
	)

	return cm
}

// RecordRunsPrepared records runs emitted for a study.
func (cm *CampaignMetrics) RecordRunsPrepared(study string, count int) {
	cm.runsPreparedTotal.WithLabelValues(study).Add(float64(count))
}

// RecordLedgerWrite records a single run record write.
func (cm *CampaignMetrics) RecordLedgerWrite(status string) {
	cm.ledgerWritesTotal.WithLabelValues(status).Inc()
}

// RecordPrune records records deleted by a retention prune.
func (cm *CampaignMetrics) RecordPrune(deleted int64) {
	cm.prunedTotal.Add(float64(deleted))
}
