package recorder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vanet-hq/saturn/pkg/ledger"
	"vanet-hq/saturn/pkg/ledger/storage"
)

func TestRecorder_Record(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.AsyncBuffer = 10

	rec := New(store, config, nil, nil)
	defer rec.Close()

	ctx := context.Background()

	record := &ledger.RunRecord{
		ScenarioID: "motorway-dense",
		RunIndex:   3,
		Seed:       4242,
		ConfigHash: HashString("[General]\nnetwork = RSUGridNetwork\n"),
		ConfigPath: "campaigns/motorway-dense/run-3.ini",
	}

	if err := rec.Record(ctx, record); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	// The recorder fills in identity fields.
	if record.ID == "" {
		t.Error("Expected recorder to assign an ID")
	}
	if len(record.ID) != 36 {
		t.Errorf("Expected UUID-shaped ID, got %q", record.ID)
	}
	if record.CreatedAt.IsZero() {
		t.Error("Expected recorder to assign CreatedAt")
	}

	// Wait for async write to complete
	time.Sleep(100 * time.Millisecond)

	results, err := store.Query(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 stored record, got %d", len(results))
	}

	got := results[0]
	if got.ScenarioID != "motorway-dense" {
		t.Errorf("Expected scenario 'motorway-dense', got '%s'", got.ScenarioID)
	}
	if got.RunIndex != 3 {
		t.Errorf("Expected run index 3, got %d", got.RunIndex)
	}
	if got.Seed != 4242 {
		t.Errorf("Expected seed 4242, got %d", got.Seed)
	}
	if got.ConfigHash != record.ConfigHash {
		t.Errorf("Config hash not preserved: %s", got.ConfigHash)
	}
}

func TestRecorder_PreservesCallerID(t *testing.T) {
	store := storage.NewMemoryStorage()

	rec := New(store, DefaultConfig(), nil, nil)
	defer rec.Close()

	record := &ledger.RunRecord{
		ID:         "caller-assigned-id",
		ScenarioID: "motorway-dense",
		Seed:       1,
	}

	if err := rec.Record(context.Background(), record); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if store.GetByID("caller-assigned-id") == nil {
		t.Error("Expected caller-assigned ID to be preserved")
	}
}

func TestRecorder_RejectsInvalidRecord(t *testing.T) {
	store := storage.NewMemoryStorage()

	rec := New(store, DefaultConfig(), nil, nil)
	defer rec.Close()

	err := rec.Record(context.Background(), &ledger.RunRecord{
		ScenarioID: "",
		Seed:       1,
	})
	if err == nil {
		t.Fatal("Expected error for missing scenario id, got nil")
	}

	err = rec.Record(context.Background(), &ledger.RunRecord{
		ScenarioID: "motorway-dense",
		RunIndex:   -1,
	})
	if err == nil {
		t.Fatal("Expected error for negative run index, got nil")
	}

	if store.Size() != 0 {
		t.Errorf("Expected nothing stored, got %d records", store.Size())
	}
}

func TestRecorder_GracefulShutdown(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.AsyncBuffer = 100

	rec := New(store, config, nil, nil)

	ctx := context.Background()

	for i := 0; i < 10; i++ {
		record := &ledger.RunRecord{
			ScenarioID: "motorway-dense",
			RunIndex:   i,
			Seed:       int64(i + 1),
			ConfigHash: HashString(fmt.Sprintf("run-%d", i)),
		}
		if err := rec.Record(ctx, record); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	// Close must drain the channel before returning.
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	count, _ := store.Count(ctx, &ledger.Query{})
	if count != 10 {
		t.Errorf("Expected 10 stored records after graceful shutdown, got %d", count)
	}
}

func TestRecorder_Disabled(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.Enabled = false

	rec := New(store, config, nil, nil)
	defer rec.Close()

	err := rec.Record(context.Background(), &ledger.RunRecord{
		ScenarioID: "motorway-dense",
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("Record() should not fail when disabled: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if store.Size() != 0 {
		t.Errorf("Expected 0 stored records when disabled, got %d", store.Size())
	}
}

func TestRecorder_DropsAfterClose(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.WriteTimeout = 100 * time.Millisecond

	rec := New(store, config, nil, nil)
	rec.Close()

	err := rec.Record(context.Background(), &ledger.RunRecord{
		ScenarioID: "motorway-dense",
		Seed:       1,
	})
	if err == nil {
		t.Fatal("Expected error recording after Close(), got nil")
	}
}

func TestRecorder_ConcurrentRecords(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.AsyncBuffer = 100

	rec := New(store, config, nil, nil)

	ctx := context.Background()
	done := make(chan bool, 20)

	for i := 0; i < 20; i++ {
		go func(i int) {
			_ = rec.Record(ctx, &ledger.RunRecord{
				ScenarioID: "motorway-dense",
				RunIndex:   i,
				Seed:       int64(i + 1),
			})
			done <- true
		}(i)
	}

	for i := 0; i < 20; i++ {
		<-done
	}

	rec.Close()

	count, _ := store.Count(ctx, &ledger.Query{})
	if count != 20 {
		t.Errorf("Expected 20 stored records, got %d", count)
	}
}

func BenchmarkRecorder_Record(b *testing.B) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.AsyncBuffer = 10000

	rec := New(store, config, nil, nil)
	defer rec.Close()

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rec.Record(ctx, &ledger.RunRecord{
			ScenarioID: "motorway-dense",
			RunIndex:   i,
			Seed:       int64(i + 1),
		})
	}
}
