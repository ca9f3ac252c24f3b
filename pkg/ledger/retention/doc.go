// Package retention provides retention policy enforcement for run records.
//
// # Retention Policy
//
// The retention package prunes old run records in two phases:
//
//   - Age-based: delete records older than a configurable number of days
//   - Count-based: cap the total number of records, oldest deleted first
//
// # Basic Usage
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    MaxAgeDays: 90,
//	    Schedule:   "0 3 * * *", // Daily at 3 AM
//	}, logger, collector)
//
//	// Start background pruning
//	if err := pruner.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pruner.Stop()
//
//	// Check next scheduled pruning time
//	if next := pruner.NextPruning(); next != nil {
//	    log.Printf("Next pruning scheduled for: %s", next)
//	}
//
// # Manual Pruning
//
// `vanet runs prune` triggers one pruning cycle directly:
//
//	deleted, err := pruner.Prune(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("Deleted %d old run records", deleted)
//
// # Dry Runs
//
// With DryRun set, Prune reports how many records a real prune would
// delete without touching the database. `vanet runs prune --dry-run`
// uses this to preview retention changes.
//
// # Retention Period
//
// The retention period is specified in days:
//
//   - 0 days: keep records forever (no age-based pruning)
//   - 90 days: delete records older than 90 days (default)
//
// # Scheduling
//
// The pruner runs on a cron schedule:
//
//   - "0 3 * * *": Daily at 3 AM (default)
//   - "0 0 * * 0": Weekly on Sunday at midnight
//   - "0 */6 * * *": Every 6 hours
//   - "*/1 * * * *": Every minute (testing only)
//
// The expression is validated at config load and again when the scheduler
// starts. If no schedule is configured, Start() returns immediately
// without error and nothing runs in the background.
package retention
