package config

import "time"

// Default configuration values.
const (
	// Engine defaults
	DefaultEngineSection         = "General"
	DefaultEngineMaxFileSize     = 10 * 1024 * 1024
	DefaultEngineMaxResourceSize = 64 * 1024 * 1024

	// Campaign defaults
	DefaultCampaignOutputDir = "campaigns"

	// Git defaults
	DefaultGitBranch    = "main"
	DefaultGitDirectory = "data/templates"
	DefaultGitTimeout   = 60 * time.Second
	DefaultGitUsername  = "git"

	// Ledger defaults
	DefaultLedgerEnabled = true
	DefaultLedgerBackend = "sqlite"

	// SQLite defaults
	DefaultSQLitePath         = "data/runs.db"
	DefaultSQLiteMaxOpenConns = 10
	DefaultSQLiteMaxIdleConns = 5
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	// Recorder defaults
	DefaultRecorderAsyncBuffer  = 1000
	DefaultRecorderWriteTimeout = 5 * time.Second

	// Retention defaults
	DefaultRetentionMaxAgeDays = 90
	DefaultRetentionSchedule   = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "vanet"
	DefaultMetricsSubsystem = "saturn"
)

// DefaultResolveDurationBuckets are the histogram bounds in seconds for
// resolution latency. Resolution is sub-millisecond in the common case.
var DefaultResolveDurationBuckets = []float64{
	0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01,
}

// ApplyDefaults fills in default values for unset fields. It is
// idempotent and safe to call on a partially populated config.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// Engine defaults
	if cfg.Engine.DefaultSection == "" {
		cfg.Engine.DefaultSection = DefaultEngineSection
	}
	if cfg.Engine.MaxFileSize == 0 {
		cfg.Engine.MaxFileSize = DefaultEngineMaxFileSize
	}
	if cfg.Engine.MaxResourceSize == 0 {
		cfg.Engine.MaxResourceSize = DefaultEngineMaxResourceSize
	}

	// Campaign defaults
	if cfg.Campaign.OutputDir == "" {
		cfg.Campaign.OutputDir = DefaultCampaignOutputDir
	}
	if cfg.Campaign.Git.Branch == "" {
		cfg.Campaign.Git.Branch = DefaultGitBranch
	}
	if cfg.Campaign.Git.Directory == "" {
		cfg.Campaign.Git.Directory = DefaultGitDirectory
	}
	if cfg.Campaign.Git.Timeout == 0 {
		cfg.Campaign.Git.Timeout = DefaultGitTimeout
	}
	if cfg.Campaign.Git.Auth.Username == "" {
		cfg.Campaign.Git.Auth.Username = DefaultGitUsername
	}

	// Ledger defaults. Enabled defaults to true, so an explicit false
	// in the file is indistinguishable from unset; disabling goes
	// through Backend = "memory" or the VANET_LEDGER_ENABLED override.
	if !cfg.Ledger.Enabled {
		cfg.Ledger.Enabled = DefaultLedgerEnabled
	}
	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = DefaultLedgerBackend
	}
	if cfg.Ledger.SQLite.Path == "" {
		cfg.Ledger.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Ledger.SQLite.MaxOpenConns == 0 {
		cfg.Ledger.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Ledger.SQLite.MaxIdleConns == 0 {
		cfg.Ledger.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Ledger.SQLite.BusyTimeout == 0 {
		cfg.Ledger.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Ledger.Recorder.AsyncBuffer == 0 {
		cfg.Ledger.Recorder.AsyncBuffer = DefaultRecorderAsyncBuffer
	}
	if cfg.Ledger.Recorder.WriteTimeout == 0 {
		cfg.Ledger.Recorder.WriteTimeout = DefaultRecorderWriteTimeout
	}
	if cfg.Ledger.Retention.MaxAgeDays == 0 {
		cfg.Ledger.Retention.MaxAgeDays = DefaultRetentionMaxAgeDays
	}
	if cfg.Ledger.Retention.Schedule == "" {
		cfg.Ledger.Retention.Schedule = DefaultRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if !cfg.Telemetry.Metrics.Enabled {
		cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.ResolveDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.ResolveDurationBuckets = DefaultResolveDurationBuckets
	}
}

// DefaultConfig returns a fully populated config with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
