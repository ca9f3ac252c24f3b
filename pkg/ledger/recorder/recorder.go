package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"vanet-hq/saturn/pkg/ledger"
	"vanet-hq/saturn/pkg/telemetry/metrics"
)

// Config contains configuration for the run recorder.
type Config struct {
	// Enabled enables run recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage. It also
	// bounds how long Record waits on a full channel before dropping.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder records provenance for prepared simulation runs. Records are
// written asynchronously so campaign generation never blocks on storage.
type Recorder struct {
	storage    ledger.Storage
	config     *Config
	recordChan chan *ledger.RunRecord
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger
	collector  *metrics.Collector
}

// New creates a run recorder backed by the provided storage. A nil config
// uses defaults, a nil logger uses slog.Default, and a nil collector
// disables metrics.
func New(storage ledger.Storage, config *Config, logger *slog.Logger, collector *metrics.Collector) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *ledger.RunRecord, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ledger.recorder"),
		collector:  collector,
	}

	// Start background worker to drain channel
	r.wg.Add(1)
	go r.worker()

	r.logger.Debug("run recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record enqueues a run record for async writing to storage. The recorder
// assigns a UUIDv4 ID and a creation timestamp if the caller left them
// empty.
//
// This method returns immediately and does not block on storage writes.
// If the channel stays full for WriteTimeout, the record is dropped and an
// error is returned.
func (r *Recorder) Record(ctx context.Context, record *ledger.RunRecord) error {
	if !r.config.Enabled {
		return nil
	}

	if err := record.Validate(); err != nil {
		return ledger.NewRecorderError(record.ID, err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	// A closed recorder has no worker left to drain the channel, so do not
	// enqueue even if the buffer has room.
	select {
	case <-r.done:
		r.dropped(record, "recorder shutting down")
		return ledger.NewRecorderError(record.ID, context.Canceled)
	default:
	}

	select {
	case r.recordChan <- record:
		r.logger.Debug("run record enqueued",
			"record_id", record.ID,
			"scenario_id", record.ScenarioID,
			"run_index", record.RunIndex,
		)
	case <-ctx.Done():
		r.dropped(record, "context cancelled")
		return ledger.NewRecorderError(record.ID, ctx.Err())
	case <-time.After(r.config.WriteTimeout):
		r.dropped(record, "channel full")
		return ledger.NewRecorderError(record.ID, context.DeadlineExceeded)
	case <-r.done:
		r.dropped(record, "recorder shutting down")
		return ledger.NewRecorderError(record.ID, context.Canceled)
	}

	return nil
}

// Close gracefully shuts down the recorder by draining the async channel
// and waiting for all pending writes to complete.
func (r *Recorder) Close() error {
	r.logger.Debug("shutting down run recorder")

	// Signal shutdown
	close(r.done)

	// Wait for worker to finish draining channel
	r.wg.Wait()

	r.logger.Debug("run recorder shut down")
	return nil
}

// worker is the background goroutine that drains the record channel and
// writes records to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			// Drain remaining records from channel before exit
			pending := len(r.recordChan)
			if pending > 0 {
				r.logger.Debug("draining record channel before shutdown",
					"pending_count", pending,
				)
			}

			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

// writeRecord writes a single run record to storage.
func (r *Recorder) writeRecord(record *ledger.RunRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()

	err := r.storage.Store(ctx, record)
	if err != nil {
		r.logger.Error("failed to store run record",
			"record_id", record.ID,
			"scenario_id", record.ScenarioID,
			"error", err,
		)
		if r.collector != nil {
			r.collector.RecordLedgerWrite("failed")
		}
		return
	}

	duration := time.Since(start)

	r.logger.Debug("run recorded",
		"record_id", record.ID,
		"scenario_id", record.ScenarioID,
		"run_index", record.RunIndex,
		"seed", record.Seed,
	)
	if r.collector != nil {
		r.collector.RecordLedgerWrite("written")
	}

	// Warn if write was slow
	if duration > r.config.WriteTimeout/2 {
		r.logger.Warn("slow ledger write",
			"record_id", record.ID,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", (r.config.WriteTimeout / 2).Milliseconds(),
		)
	}
}

// dropped logs and counts a record the recorder could not enqueue.
func (r *Recorder) dropped(record *ledger.RunRecord, reason string) {
	r.logger.Error("dropping run record",
		"record_id", record.ID,
		"scenario_id", record.ScenarioID,
		"reason", reason,
		"channel_capacity", r.config.AsyncBuffer,
	)
	if r.collector != nil {
		r.collector.RecordLedgerWrite("dropped")
	}
}
