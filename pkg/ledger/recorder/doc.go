// Package recorder provides asynchronous run recording for the vanet
// toolchain. It assigns run IDs, hashes emitted configuration files, and
// writes run records to a ledger.Storage backend without blocking campaign
// generation.
//
// # Recording Flow
//
//  1. Campaign generation emits a configuration file for one run
//  2. The emitted bytes are hashed with SHA-256
//  3. Record() assigns a UUIDv4 and enqueues the record (non-blocking)
//  4. A background goroutine drains the channel and writes to storage
//  5. Close() drains remaining records before exit (no data loss)
//
// # Basic Usage
//
//	rec := recorder.New(store, &recorder.Config{
//	    Enabled:      true,
//	    AsyncBuffer:  1000,
//	    WriteTimeout: 5 * time.Second,
//	}, logger, collector)
//	defer rec.Close()
//
//	rec.Record(ctx, &ledger.RunRecord{
//	    ScenarioID: row.ScenarioID,
//	    RunIndex:   i,
//	    Seed:       seeds[i],
//	    ConfigHash: recorder.HashContent(emitted),
//	    ConfigPath: outPath,
//	})
//
// # Backpressure
//
// Record() blocks at most WriteTimeout when the channel is full, then drops
// the record and returns a RecorderError. Drops and write failures are
// counted in the metrics collector so a stuck database is visible.
//
// # Thread Safety
//
// Record() is safe for concurrent use. The background goroutine is the only
// writer to storage.
package recorder
