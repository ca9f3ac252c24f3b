package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "ledger.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateCampaign(&cfg.Campaign)...)
	errs = append(errs, validateLedger(&cfg.Ledger)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateEngine validates engine configuration.
func validateEngine(cfg *EngineConfig) []FieldError {
	var errs []FieldError

	if cfg.DefaultSection == "" {
		errs = append(errs, FieldError{
			Field:   "engine.default_section",
			Message: "default section is required",
		})
	}
	if cfg.MaxFileSize < 0 {
		errs = append(errs, FieldError{
			Field:   "engine.max_file_size",
			Message: "max file size must be non-negative",
		})
	}
	if cfg.MaxResourceSize < 0 {
		errs = append(errs, FieldError{
			Field:   "engine.max_resource_size",
			Message: "max resource size must be non-negative",
		})
	}

	return errs
}

// validateCampaign validates campaign configuration.
func validateCampaign(cfg *CampaignConfig) []FieldError {
	var errs []FieldError

	if cfg.OutputDir == "" {
		errs = append(errs, FieldError{
			Field:   "campaign.output_dir",
			Message: "output directory is required",
		})
	}
	if cfg.MasterSeed < 0 {
		errs = append(errs, FieldError{
			Field:   "campaign.master_seed",
			Message: "master seed must be non-negative",
		})
	}

	if cfg.Git.Enabled {
		if cfg.Git.Repository == "" {
			errs = append(errs, FieldError{
				Field:   "campaign.git.repository",
				Message: "repository URL is required when git is enabled",
			})
		}
		if cfg.Git.Directory == "" {
			errs = append(errs, FieldError{
				Field:   "campaign.git.directory",
				Message: "checkout directory is required when git is enabled",
			})
		}
		if cfg.Git.Timeout < 0 {
			errs = append(errs, FieldError{
				Field:   "campaign.git.timeout",
				Message: "timeout must be positive",
			})
		}
	}

	return errs
}

// validateLedger validates ledger configuration.
func validateLedger(cfg *LedgerConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}

	validBackends := map[string]bool{"sqlite": true, "memory": true}
	if !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "ledger.backend",
			Message: fmt.Sprintf("invalid backend %q (must be sqlite or memory)", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" {
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "ledger.sqlite.path",
				Message: "database path is required for sqlite backend",
			})
		}
		if cfg.SQLite.MaxOpenConns < 1 {
			errs = append(errs, FieldError{
				Field:   "ledger.sqlite.max_open_conns",
				Message: "max open connections must be at least 1",
			})
		}
		if cfg.SQLite.MaxIdleConns < 0 {
			errs = append(errs, FieldError{
				Field:   "ledger.sqlite.max_idle_conns",
				Message: "max idle connections must be non-negative",
			})
		}
		if cfg.SQLite.MaxIdleConns > cfg.SQLite.MaxOpenConns {
			errs = append(errs, FieldError{
				Field:   "ledger.sqlite.max_idle_conns",
				Message: "max idle connections cannot exceed max open connections",
			})
		}
	}

	if cfg.Recorder.AsyncBuffer < 1 {
		errs = append(errs, FieldError{
			Field:   "ledger.recorder.async_buffer",
			Message: "async buffer must be at least 1",
		})
	}
	if cfg.Recorder.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "ledger.recorder.write_timeout",
			Message: "write timeout must be positive",
		})
	}

	if cfg.Retention.Enabled {
		if cfg.Retention.MaxAgeDays < 1 && cfg.Retention.MaxRecords < 1 {
			errs = append(errs, FieldError{
				Field:   "ledger.retention",
				Message: "retention requires max_age_days or max_records",
			})
		}
		if cfg.Retention.MaxRecords < 0 {
			errs = append(errs, FieldError{
				Field:   "ledger.retention.max_records",
				Message: "max records must be non-negative",
			})
		}
		if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "ledger.retention.schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be positive",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q (must be text or json)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Path == "" || !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with /",
			})
		}
		if cfg.Metrics.Namespace == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: "namespace is required when metrics are enabled",
			})
		}
		for i, b := range cfg.Metrics.ResolveDurationBuckets {
			if b <= 0 {
				errs = append(errs, FieldError{
					Field:   "telemetry.metrics.resolve_duration_buckets",
					Message: fmt.Sprintf("bucket %d must be positive", i),
				})
				break
			}
			if i > 0 && b <= cfg.Metrics.ResolveDurationBuckets[i-1] {
				errs = append(errs, FieldError{
					Field:   "telemetry.metrics.resolve_duration_buckets",
					Message: "buckets must be strictly increasing",
				})
				break
			}
		}
	}

	return errs
}
