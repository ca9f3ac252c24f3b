package ledger

import (
	"context"
	"fmt"
	"time"
)

// RunRecord is one row of run provenance: a single prepared simulation run
// and the exact configuration it was handed. Records are append-only; a
// record is never updated after it is stored.
type RunRecord struct {
	// ID is a UUIDv4 assigned by the recorder when the record is enqueued.
	ID string `json:"id"`

	// ScenarioID identifies the scenario or study the run belongs to,
	// e.g. "motorway-dense" or a manifest row's scenario column.
	ScenarioID string `json:"scenario_id"`

	// RunIndex is the repetition number within the scenario, starting at 0.
	RunIndex int `json:"run_index"`

	// Seed is the RNG seed the run was prepared with.
	Seed int64 `json:"seed"`

	// ConfigHash is the hex-encoded SHA-256 of the emitted configuration
	// file, so a finished run can be traced back to its exact inputs.
	ConfigHash string `json:"config_hash"`

	// ConfigPath is where the emitted configuration file was written.
	ConfigPath string `json:"config_path"`

	// CreatedAt is when the run was prepared.
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the record carries the fields every stored row
// must have. The recorder fills ID and CreatedAt; callers supply the rest.
func (r *RunRecord) Validate() error {
	if r.ScenarioID == "" {
		return fmt.Errorf("scenario id cannot be empty")
	}
	if r.RunIndex < 0 {
		return fmt.Errorf("run index cannot be negative, got %d", r.RunIndex)
	}
	return nil
}

// Query defines filter parameters for querying run records.
type Query struct {
	// Time range
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive start time
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive end time

	// Filters
	ScenarioID string `json:"scenario_id,omitempty"` // Filter by scenario
	Seed       *int64 `json:"seed,omitempty"`        // Filter by exact seed

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return
	Offset int `json:"offset,omitempty"` // Skip N records

	// Sorting
	SortBy    string `json:"sort_by,omitempty"`    // "created_at", "scenario_id", "run_index", "seed"
	SortOrder string `json:"sort_order,omitempty"` // "asc", "desc"
}

// Storage defines the interface for run ledger backends.
// Implementations must be thread-safe and support concurrent access.
type Storage interface {
	// Store persists a run record.
	// Returns an error if the record cannot be written.
	Store(ctx context.Context, record *RunRecord) error

	// Query retrieves run records matching the query filters.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*RunRecord, error)

	// Count returns the number of run records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes run records matching the query filters.
	// Returns the number of records deleted.
	// Used for retention policy enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the storage backend.
	Close() error
}
