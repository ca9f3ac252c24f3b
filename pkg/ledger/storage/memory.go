package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"vanet-hq/saturn/pkg/ledger"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// It backs tests and dry runs; records do not survive the process.
type MemoryStorage struct {
	records map[string]*ledger.RunRecord
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*ledger.RunRecord),
	}
}

// Store persists a run record to memory.
func (s *MemoryStorage) Store(ctx context.Context, record *ledger.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create a copy to avoid mutation
	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Query retrieves run records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *ledger.Query) ([]*ledger.RunRecord, error) {
	s.mu.RLock()

	var results []*ledger.RunRecord
	for _, record := range s.records {
		if matchesQuery(record, query) {
			// Create a copy to avoid mutation
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}
	s.mu.RUnlock()

	if err := sortRecords(results, query); err != nil {
		return nil, ledger.NewQueryError(query, err)
	}

	// Apply pagination
	start := query.Offset
	if start > len(results) {
		return []*ledger.RunRecord{}, nil
	}

	end := start + query.Limit
	if end > len(results) || query.Limit <= 0 {
		end = len(results)
	}

	return results[start:end], nil
}

// Count returns the number of run records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *ledger.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}

	return count, nil
}

// Delete removes run records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *ledger.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64

	toDelete := []string{}
	for id, record := range s.records {
		if matchesQuery(record, query) {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(s.records, id)
		deleted++
	}

	return deleted, nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*ledger.RunRecord)
	return nil
}

// matchesQuery checks if a record matches the query filters.
func matchesQuery(record *ledger.RunRecord, query *ledger.Query) bool {
	// Time range filter
	if query.StartTime != nil && record.CreatedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.CreatedAt.After(*query.EndTime) {
		return false
	}

	// Scenario filter
	if query.ScenarioID != "" && record.ScenarioID != query.ScenarioID {
		return false
	}

	// Seed filter
	if query.Seed != nil && record.Seed != *query.Seed {
		return false
	}

	return true
}

// sortRecords orders results the same way the sqlite backend would, so
// the two backends are interchangeable in tests.
func sortRecords(records []*ledger.RunRecord, query *ledger.Query) error {
	var less func(a, b *ledger.RunRecord) bool
	switch query.SortBy {
	case "", "created_at":
		less = func(a, b *ledger.RunRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "scenario_id":
		less = func(a, b *ledger.RunRecord) bool { return a.ScenarioID < b.ScenarioID }
	case "run_index":
		less = func(a, b *ledger.RunRecord) bool { return a.RunIndex < b.RunIndex }
	case "seed":
		less = func(a, b *ledger.RunRecord) bool { return a.Seed < b.Seed }
	default:
		return fmt.Errorf("unknown sort column %q", query.SortBy)
	}

	asc := false
	switch query.SortOrder {
	case "", "desc", "DESC":
	case "asc", "ASC":
		asc = true
	default:
		return fmt.Errorf("unknown sort order %q", query.SortOrder)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if asc {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})

	return nil
}

// Clear removes all records from storage (for testing).
func (s *MemoryStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*ledger.RunRecord)
}

// GetByID retrieves a single run record by ID (for testing).
func (s *MemoryStorage) GetByID(id string) *ledger.RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil
	}

	// Return a copy
	recordCopy := *record
	return &recordCopy
}

// Size returns the number of records in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
