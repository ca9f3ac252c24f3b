package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	if got := GetScenario(ctx); got != "" {
		t.Errorf("expected empty scenario, got %q", got)
	}
	if got := GetRunIndex(ctx); got != -1 {
		t.Errorf("expected run index -1, got %d", got)
	}

	ctx = WithScenario(ctx, "scenarios/motorway.ini")
	ctx = WithSection(ctx, "HeavyRain")
	ctx = WithRunIndex(ctx, 4)
	ctx = WithStudy(ctx, "tau-sweep")

	if got := GetScenario(ctx); got != "scenarios/motorway.ini" {
		t.Errorf("expected scenario path, got %q", got)
	}
	if got := GetSection(ctx); got != "HeavyRain" {
		t.Errorf("expected section, got %q", got)
	}
	if got := GetRunIndex(ctx); got != 4 {
		t.Errorf("expected run index 4, got %d", got)
	}
	if got := GetStudy(ctx); got != "tau-sweep" {
		t.Errorf("expected study, got %q", got)
	}
}

func TestInfoContext_IncludesFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	ctx := WithScenario(context.Background(), "urban.ini")
	ctx = WithRunIndex(ctx, 0)

	logger.InfoContext(ctx, "resolved", "parameter", "beaconInterval")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["scenario"] != "urban.ini" {
		t.Errorf("expected scenario field, got %v", entry["scenario"])
	}
	if entry["run_index"] != "0" {
		t.Errorf("expected run_index field, got %v", entry["run_index"])
	}
	if entry["parameter"] != "beaconInterval" {
		t.Errorf("expected explicit arg preserved, got %v", entry["parameter"])
	}
}

func TestWithContext_NoFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	// A bare context returns the same logger.
	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("expected same logger for context without fields")
	}
}
