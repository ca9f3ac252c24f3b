package config

import (
	"reflect"
	"testing"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Engine.DefaultSection != DefaultEngineSection {
		t.Errorf("expected default section %q, got %q", DefaultEngineSection, cfg.Engine.DefaultSection)
	}
	if cfg.Engine.MaxFileSize != DefaultEngineMaxFileSize {
		t.Errorf("expected max file size %d, got %d", DefaultEngineMaxFileSize, cfg.Engine.MaxFileSize)
	}
	if cfg.Campaign.OutputDir != DefaultCampaignOutputDir {
		t.Errorf("expected output dir %q, got %q", DefaultCampaignOutputDir, cfg.Campaign.OutputDir)
	}
	if cfg.Campaign.Git.Branch != DefaultGitBranch {
		t.Errorf("expected git branch %q, got %q", DefaultGitBranch, cfg.Campaign.Git.Branch)
	}
	if !cfg.Ledger.Enabled {
		t.Error("expected ledger enabled by default")
	}
	if cfg.Ledger.Backend != DefaultLedgerBackend {
		t.Errorf("expected backend %q, got %q", DefaultLedgerBackend, cfg.Ledger.Backend)
	}
	if cfg.Ledger.SQLite.MaxOpenConns != DefaultSQLiteMaxOpenConns {
		t.Errorf("expected max open conns %d, got %d", DefaultSQLiteMaxOpenConns, cfg.Ledger.SQLite.MaxOpenConns)
	}
	if cfg.Ledger.Retention.Schedule != DefaultRetentionSchedule {
		t.Errorf("expected schedule %q, got %q", DefaultRetentionSchedule, cfg.Ledger.Retention.Schedule)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected debounce %v, got %v", DefaultWatchDebounce, cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("expected level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics enabled by default")
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("expected namespace %q, got %q", DefaultMetricsNamespace, cfg.Telemetry.Metrics.Namespace)
	}
	if len(cfg.Telemetry.Metrics.ResolveDurationBuckets) == 0 {
		t.Error("expected default resolve duration buckets")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Engine.DefaultSection = "DenseHighway"
	cfg.Ledger.Backend = "memory"
	cfg.Telemetry.Logging.Format = "json"

	ApplyDefaults(cfg)

	if cfg.Engine.DefaultSection != "DenseHighway" {
		t.Errorf("expected explicit section preserved, got %q", cfg.Engine.DefaultSection)
	}
	if cfg.Ledger.Backend != "memory" {
		t.Errorf("expected explicit backend preserved, got %q", cfg.Ledger.Backend)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("expected explicit format preserved, got %q", cfg.Telemetry.Logging.Format)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	once := &Config{}
	ApplyDefaults(once)

	twice := &Config{}
	ApplyDefaults(twice)
	ApplyDefaults(twice)

	if !reflect.DeepEqual(once, twice) {
		t.Error("ApplyDefaults is not idempotent")
	}
}

func TestApplyDefaults_NilConfig(t *testing.T) {
	// Must not panic.
	ApplyDefaults(nil)
}

func TestDefaultConfig_PassesValidation(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("DefaultConfig should validate, got: %v", err)
	}
}
