package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vanet-hq/saturn/pkg/ledger"
	"vanet-hq/saturn/pkg/telemetry/metrics"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// MaxAgeDays is the number of days to retain run records.
	// 0 means keep records forever (no age-based pruning).
	MaxAgeDays int

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64

	// Schedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	Schedule string

	// DryRun reports what would be pruned without deleting anything.
	DryRun bool
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxAgeDays: 90,
		MaxRecords: 0,
		Schedule:   "0 3 * * *",
		DryRun:     false,
	}
}

// Pruner enforces retention policies on run records.
type Pruner struct {
	storage   ledger.Storage
	config    *Config
	logger    *slog.Logger
	collector *metrics.Collector
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner. A nil config uses defaults,
// a nil logger uses slog.Default, and a nil collector disables metrics.
func NewPruner(storage ledger.Storage, config *Config, logger *slog.Logger, collector *metrics.Collector) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	pruner := &Pruner{
		storage:   storage,
		config:    config,
		logger:    logger.With("component", "ledger.retention"),
		collector: collector,
	}

	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes run records older than the retention period or exceeding
// the max record count.
//
// Pruning happens in two phases:
//  1. Age-based: delete records older than MaxAgeDays
//  2. Count-based: if total records > MaxRecords, delete oldest
//
// Both can run together. In dry-run mode nothing is deleted; the return
// value is how many records a real prune would remove.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	// Phase 1: Prune by retention period
	if p.config.MaxAgeDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned records by age",
			"deleted_count", deleted,
			"max_age_days", p.config.MaxAgeDays,
			"dry_run", p.config.DryRun,
		)
	}

	// Phase 2: Prune by max record count
	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned records by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
			"dry_run", p.config.DryRun,
		)
	}

	if totalDeleted == 0 {
		p.logger.Debug("no records pruned",
			"max_age_days", p.config.MaxAgeDays,
			"max_records", p.config.MaxRecords,
		)
	} else if !p.config.DryRun {
		if p.collector != nil {
			p.collector.RecordLedgerPrune(totalDeleted)
		}
		p.logger.Info("ledger pruning completed",
			"total_deleted", totalDeleted,
			"max_age_days", p.config.MaxAgeDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes records older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.MaxAgeDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"max_age_days", p.config.MaxAgeDays,
	)

	query := &ledger.Query{
		EndTime: &cutoff,
	}

	if p.config.DryRun {
		count, err := p.storage.Count(ctx, query)
		if err != nil {
			return 0, ledger.NewRetentionError(p.config.MaxAgeDays, err)
		}
		return count, nil
	}

	deleted, err := p.storage.Delete(ctx, query)
	if err != nil {
		return 0, ledger.NewRetentionError(p.config.MaxAgeDays, err)
	}

	return deleted, nil
}

// pruneByCount deletes oldest records if total count exceeds MaxRecords.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &ledger.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	if count <= p.config.MaxRecords {
		p.logger.Debug("record count within limit",
			"current", count,
			"max", p.config.MaxRecords,
		)
		return 0, nil
	}

	toDelete := count - p.config.MaxRecords

	p.logger.Info("record count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", toDelete,
	)

	if p.config.DryRun {
		return toDelete, nil
	}

	// Fetch the oldest records that are over the cap. The last one marks
	// the cutoff time for the delete query.
	oldest, err := p.storage.Query(ctx, &ledger.Query{
		SortBy:    "created_at",
		SortOrder: "asc",
		Limit:     int(toDelete),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query oldest records: %w", err)
	}

	if len(oldest) == 0 {
		p.logger.Debug("no records found to delete")
		return 0, nil
	}

	cutoffTime := oldest[len(oldest)-1].CreatedAt

	p.logger.Debug("calculated cutoff time for count-based pruning",
		"cutoff_time", cutoffTime,
		"records_to_delete", len(oldest),
	)

	deleted, err := p.storage.Delete(ctx, &ledger.Query{
		EndTime: &cutoffTime,
	})
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	return deleted, nil
}

// Start starts the automatic pruning scheduler.
// Call this when starting the application.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
// Call this during graceful shutdown.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
