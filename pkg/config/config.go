package config

import (
	"time"
)

// Config is the root configuration for the vanet toolchain. It is loaded
// from a YAML file and can be overridden by VANET_* environment variables.
type Config struct {
	// Engine configures scenario parsing and parameter resolution.
	Engine EngineConfig `yaml:"engine"`

	// Campaign configures study generation from manifest files.
	Campaign CampaignConfig `yaml:"campaign"`

	// Ledger configures run provenance recording.
	Ledger LedgerConfig `yaml:"ledger"`

	// Watch configures scenario file watching for continuous linting.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig controls the scenario loader and resolver.
type EngineConfig struct {
	// DefaultSection is the section activated when nothing else
	// selects one. Default: "General".
	DefaultSection string `yaml:"default_section"`

	// MaxFileSize is the maximum scenario file size in bytes.
	// Default: 10MB.
	MaxFileSize int64 `yaml:"max_file_size"`

	// StrictParsing treats parse warnings as errors. Default: false.
	StrictParsing bool `yaml:"strict_parsing"`

	// ResourceDir is the base directory for relative xmldoc/csvdoc
	// paths. Empty means the directory of the scenario file.
	ResourceDir string `yaml:"resource_dir"`

	// MaxResourceSize is the maximum external document size in bytes.
	// Default: 64MB.
	MaxResourceSize int64 `yaml:"max_resource_size"`
}

// CampaignConfig controls campaign generation.
type CampaignConfig struct {
	// OutputDir is where generated scenario directories are written.
	// Default: "campaigns".
	OutputDir string `yaml:"output_dir"`

	// MasterSeed seeds the per-run seed draws. Zero draws a fresh
	// master seed from the system clock for every prepare invocation.
	MasterSeed int64 `yaml:"master_seed"`

	// Git configures fetching scenario templates from a repository.
	Git GitConfig `yaml:"git"`
}

// GitConfig controls the optional git-backed template source.
type GitConfig struct {
	// Enabled turns on git template fetching. Default: false.
	Enabled bool `yaml:"enabled"`

	// Repository is the clone URL (https or ssh).
	Repository string `yaml:"repository"`

	// Branch is the branch to track. Default: "main".
	Branch string `yaml:"branch"`

	// Revision pins a specific commit. Empty tracks the branch head.
	Revision string `yaml:"revision"`

	// Directory is the local checkout path. Default: "data/templates".
	Directory string `yaml:"directory"`

	// Timeout bounds clone and fetch operations. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`

	// Auth holds optional credentials for private repositories.
	Auth GitAuthConfig `yaml:"auth"`
}

// GitAuthConfig holds git credentials. All fields are optional; public
// repositories need none of them.
type GitAuthConfig struct {
	// SSHKeyPath is the path to a private key for ssh URLs.
	SSHKeyPath string `yaml:"ssh_key_path"`

	// Username for token auth over https. Default: "git".
	Username string `yaml:"username"`

	// Token is a personal access token for https URLs.
	Token string `yaml:"token"`
}

// LedgerConfig controls run provenance recording.
type LedgerConfig struct {
	// Enabled turns the ledger on. Default: true.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "sqlite" or "memory".
	// Default: "sqlite".
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Recorder configures asynchronous write-behind recording.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention configures pruning of old run records.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig holds sqlite backend settings.
type SQLiteConfig struct {
	// Path is the database file. Default: "data/runs.db".
	Path string `yaml:"path"`

	// MaxOpenConns caps open connections. Default: 10.
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns caps idle connections. Default: 5.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// BusyTimeout is how long a locked database is retried. Default: 5s.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig holds asynchronous recorder settings.
type RecorderConfig struct {
	// AsyncBuffer is the channel capacity for pending records.
	// Default: 1000.
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout bounds a single backend write. Default: 5s.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RetentionConfig holds record pruning settings.
type RetentionConfig struct {
	// Enabled turns scheduled pruning on. Default: false.
	Enabled bool `yaml:"enabled"`

	// MaxAgeDays prunes records older than this many days. Default: 90.
	MaxAgeDays int `yaml:"max_age_days"`

	// MaxRecords caps total records, oldest pruned first. Zero means
	// unlimited. Default: 0.
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a cron expression for prune runs. Default: "0 3 * * *".
	Schedule string `yaml:"schedule"`

	// DryRun logs what would be pruned without deleting. Default: false.
	DryRun bool `yaml:"dry_run"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after the last filesystem event
	// before re-linting. Default: 500ms.
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig holds observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls structured logging output.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	// Default: "info".
	Level string `yaml:"level"`

	// Format is "text" or "json". Default: "text".
	Format string `yaml:"format"`

	// AddSource includes file:line of the log call site. Default: false.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig controls Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on. Default: true.
	Enabled bool `yaml:"enabled"`

	// ListenAddress serves /metrics over HTTP when set, e.g.
	// "localhost:9141". Empty disables the listener; collection
	// still happens in-process. Default: "".
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the metrics handler. Default: "/metrics".
	Path string `yaml:"path"`

	// Namespace prefixes every metric name. Default: "vanet".
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component. Default: "saturn".
	Subsystem string `yaml:"subsystem"`

	// ResolveDurationBuckets are histogram bucket bounds in seconds
	// for parameter resolution latency.
	ResolveDurationBuckets []float64 `yaml:"resolve_duration_buckets"`
}
