package retention

import (
	"context"
	"strings"
	"testing"
	"time"

	"vanet-hq/saturn/pkg/ledger/storage"
)

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{
			name:        "valid daily schedule",
			schedule:    "0 3 * * *",
			wantRunning: true,
			wantError:   false,
		},
		{
			name:        "valid hourly schedule",
			schedule:    "0 * * * *",
			wantRunning: true,
			wantError:   false,
		},
		{
			name:        "empty schedule - no error, not running",
			schedule:    "",
			wantRunning: false,
			wantError:   false,
		},
		{
			name:        "invalid schedule",
			schedule:    "invalid cron",
			wantRunning: false,
			wantError:   true,
		},
		{
			name:        "six-field expression rejected",
			schedule:    "*/30 * * * * *",
			wantRunning: false,
			wantError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			pruner := NewPruner(store, &Config{
				MaxAgeDays: 90,
				Schedule:   tt.schedule,
			}, nil, nil)

			scheduler := NewScheduler(pruner)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := scheduler.Start(ctx)

			if (err != nil) != tt.wantError {
				t.Errorf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError && !strings.Contains(err.Error(), "invalid cron schedule") {
				t.Errorf("Start() error = %v, want invalid cron schedule", err)
			}

			if scheduler.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v",
					scheduler.IsRunning(), tt.wantRunning)
			}

			if tt.wantRunning {
				next := scheduler.NextRun()
				if next == nil {
					t.Error("NextRun() returned nil for running scheduler")
				} else if !next.After(time.Now()) {
					t.Errorf("NextRun() = %s, want a future time", next)
				}
			}

			scheduler.Stop()

			if scheduler.IsRunning() {
				t.Error("scheduler still running after Stop()")
			}
		})
	}
}

func TestScheduler_GracefulShutdown(t *testing.T) {
	store := storage.NewMemoryStorage()
	pruner := NewPruner(store, &Config{
		MaxAgeDays: 90,
		Schedule:   "0 3 * * *",
	}, nil, nil)

	scheduler := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if !scheduler.IsRunning() {
		t.Fatal("scheduler should be running after Start()")
	}

	scheduler.Stop()

	if scheduler.IsRunning() {
		t.Error("scheduler still running after Stop()")
	}

	// Stop is idempotent
	scheduler.Stop()
}

func TestScheduler_NextRun(t *testing.T) {
	store := storage.NewMemoryStorage()
	pruner := NewPruner(store, &Config{
		MaxAgeDays: 90,
		Schedule:   "0 3 * * *",
	}, nil, nil)

	scheduler := NewScheduler(pruner)

	// Before Start there is nothing scheduled
	if next := scheduler.NextRun(); next != nil {
		t.Errorf("NextRun() = %v before Start(), want nil", next)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer scheduler.Stop()

	next := scheduler.NextRun()
	if next == nil {
		t.Fatal("NextRun() returned nil for running scheduler")
	}

	// Daily at 3 AM is at most 24 hours out
	until := time.Until(*next)
	if until <= 0 || until > 24*time.Hour {
		t.Errorf("NextRun() = %s, want within the next 24h", next)
	}
}

func TestScheduler_ContextCancellation(t *testing.T) {
	store := storage.NewMemoryStorage()
	pruner := NewPruner(store, &Config{
		MaxAgeDays: 90,
		Schedule:   "0 3 * * *",
	}, nil, nil)

	scheduler := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	cancel()

	// The scheduler stops itself once the context is cancelled
	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler still running after context cancellation")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_MultipleStartStop(t *testing.T) {
	store := storage.NewMemoryStorage()
	pruner := NewPruner(store, &Config{
		MaxAgeDays: 90,
		Schedule:   "0 3 * * *",
	}, nil, nil)

	scheduler := NewScheduler(pruner)

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithCancel(context.Background())

		if err := scheduler.Start(ctx); err != nil {
			t.Fatalf("Start() cycle %d failed: %v", i, err)
		}
		if !scheduler.IsRunning() {
			t.Fatalf("scheduler not running in cycle %d", i)
		}

		scheduler.Stop()
		cancel()

		if scheduler.IsRunning() {
			t.Fatalf("scheduler still running after Stop() in cycle %d", i)
		}
	}
}

// TestPruner_StartStop tests the scheduling methods exposed on the pruner.
func TestPruner_StartStop(t *testing.T) {
	store := storage.NewMemoryStorage()
	pruner := NewPruner(store, &Config{
		MaxAgeDays: 90,
		Schedule:   "0 3 * * *",
	}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if next := pruner.NextPruning(); next == nil {
		t.Error("NextPruning() returned nil for a started pruner")
	}

	pruner.Stop()

	if pruner.scheduler.IsRunning() {
		t.Error("scheduler still running after pruner.Stop()")
	}
}
