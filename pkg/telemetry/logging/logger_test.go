package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid JSON config",
			config:  Config{Level: "info", Format: "json"},
			wantErr: false,
		},
		{
			name:    "valid text config",
			config:  Config{Level: "debug", Format: "text"},
			wantErr: false,
		},
		{
			name:    "defaults for empty level and format",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "loud", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.config.Writer = buf

			logger, err := New(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "warn", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("expected warn message in output")
	}
	if !strings.Contains(out, "error message") {
		t.Error("expected error message in output")
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Info("scenario linted", "path", "urban.ini", "warnings", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["msg"] != "scenario linted" {
		t.Errorf("expected msg %q, got %v", "scenario linted", entry["msg"])
	}
	if entry["path"] != "urban.ini" {
		t.Errorf("expected path %q, got %v", "urban.ini", entry["path"])
	}
	if entry["warnings"] != float64(2) {
		t.Errorf("expected warnings 2, got %v", entry["warnings"])
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	scoped := logger.WithComponent("engine")
	scoped.Info("resolved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["component"] != "engine" {
		t.Errorf("expected component %q, got %v", "engine", entry["component"])
	}

	// The parent logger is unaffected.
	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Error("parent logger should not carry the component field")
	}
}

func TestLogger_Slog(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "text", Writer: buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if logger.Slog() == nil {
		t.Fatal("expected underlying slog.Logger")
	}
	logger.Slog().Info("direct")
	if !strings.Contains(buf.String(), "direct") {
		t.Error("expected message logged through Slog()")
	}
}
