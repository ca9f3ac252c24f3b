// Package storage provides storage backends for run records.
//
// # Storage Backends
//
// The storage package implements the ledger.Storage interface twice:
//
//   - SQLite: Embedded database, the default for real campaigns
//   - Memory: In-memory storage for tests and dry runs
//
// # SQLite Backend
//
// The SQLite backend uses modernc.org/sqlite, a pure-Go driver, so the
// vanet binary stays cgo-free and cross-compiles cleanly. It provides
// durable storage with:
//
//   - WAL mode for concurrent reads/writes
//   - Indexes on created_at, scenario_id, and seed
//   - Connection pooling for concurrent access
//   - Busy timeout for handling locks
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path: "data/runs.db",
//	    MaxOpenConns: 10,
//	    MaxIdleConns: 5,
//	    WALMode: true,
//	    BusyTimeout: 5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.Store(ctx, record)
//
//	query := &ledger.Query{
//	    ScenarioID: "motorway-dense",
//	    StartTime:  &since,
//	    Limit:      100,
//	}
//	records, err := store.Query(ctx, query)
//
// # Thread Safety
//
// Both backends are thread-safe: Store can be called concurrently from
// multiple goroutines, and Query can be called concurrently with Store.
//
// # Schema Migration
//
// The SQLite backend initializes its schema on first use and tracks the
// schema version in the schema_version table for future migrations.
package storage
