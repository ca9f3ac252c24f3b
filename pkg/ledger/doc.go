// Package ledger records run provenance for prepared simulation runs. Every
// run emitted by campaign generation lands here as an immutable RunRecord,
// so a result directory on a cluster can always be traced back to the exact
// configuration file, seed, and scenario that produced it.
//
// # Architecture
//
// The ledger consists of three layers:
//
//  1. Recorder - Accepts run records and writes them asynchronously
//  2. Storage Backend - Persists run records (SQLite, in-memory)
//  3. Retention - Prunes old records on a cron schedule
//
// # Run Records
//
// Each run record captures:
//   - Run identity (UUID, scenario ID, run index)
//   - The RNG seed the run was prepared with
//   - SHA-256 hash of the emitted configuration file
//   - Where the configuration was written
//   - When the run was prepared
//
// # Recording Flow
//
// Records are written asynchronously so campaign generation never blocks on
// the database:
//
//	Campaign Prepare → Emit Configuration
//	     ↓
//	Recorder (async)
//	     ↓
//	Hash Emitted File
//	     ↓
//	Storage Backend (SQLite)
//	     ↓
//	Write to Database (WAL mode)
//
// # Basic Usage
//
//	// Initialize storage backend
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path: "data/runs.db",
//	    WALMode: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	// Create run recorder
//	rec := recorder.New(store, recorder.DefaultConfig(), nil, nil)
//	defer rec.Close()
//
//	// Record a prepared run (async, non-blocking)
//	rec.Record(ctx, &ledger.RunRecord{
//	    ScenarioID: "motorway-dense",
//	    RunIndex:   3,
//	    Seed:       4242,
//	    ConfigHash: recorder.HashContent(emitted),
//	    ConfigPath: "campaigns/motorway-dense/run-3.ini",
//	})
//
// # Querying Records
//
//	query := &ledger.Query{
//	    ScenarioID: "motorway-dense",
//	    StartTime:  &since,
//	    Limit:      100,
//	}
//	records, err := store.Query(ctx, query)
//
// # Retention Policies
//
// Records can be pruned automatically by age:
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    MaxAgeDays: 90,
//	    Schedule:   "0 3 * * *", // Daily at 3 AM
//	}, nil, nil)
//
//	pruner.Start(ctx)
//	defer pruner.Stop()
//
// # Thread Safety
//
// All ledger types are safe for concurrent use:
//   - Recorder: thread-safe async channel
//   - Storage: thread-safe with connection pooling
//   - Query: stateless, can be executed concurrently
//
// # Storage Backends
//
// Two backends ship with the ledger: embedded SQLite (the default, pure Go
// via modernc.org/sqlite) and an in-memory store for tests and dry runs.
// Custom backends can be implemented by satisfying the Storage interface.
package ledger
