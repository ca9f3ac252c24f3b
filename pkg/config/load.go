package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention VANET_SECTION_FIELD (e.g., VANET_LEDGER_BACKEND).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format VANET_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Engine overrides
	if val := os.Getenv("VANET_ENGINE_DEFAULT_SECTION"); val != "" {
		cfg.Engine.DefaultSection = val
	}
	if val := os.Getenv("VANET_ENGINE_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Engine.MaxFileSize = i
		}
	}
	if val := os.Getenv("VANET_ENGINE_STRICT_PARSING"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Engine.StrictParsing = b
		}
	}
	if val := os.Getenv("VANET_ENGINE_RESOURCE_DIR"); val != "" {
		cfg.Engine.ResourceDir = val
	}
	if val := os.Getenv("VANET_ENGINE_MAX_RESOURCE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Engine.MaxResourceSize = i
		}
	}

	// Campaign overrides
	if val := os.Getenv("VANET_CAMPAIGN_OUTPUT_DIR"); val != "" {
		cfg.Campaign.OutputDir = val
	}
	if val := os.Getenv("VANET_CAMPAIGN_MASTER_SEED"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Campaign.MasterSeed = i
		}
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Campaign.Git.Enabled = b
		}
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_REPOSITORY"); val != "" {
		cfg.Campaign.Git.Repository = val
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_BRANCH"); val != "" {
		cfg.Campaign.Git.Branch = val
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_REVISION"); val != "" {
		cfg.Campaign.Git.Revision = val
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_DIRECTORY"); val != "" {
		cfg.Campaign.Git.Directory = val
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_TOKEN"); val != "" {
		cfg.Campaign.Git.Auth.Token = val
	}
	if val := os.Getenv("VANET_CAMPAIGN_GIT_SSH_KEY_PATH"); val != "" {
		cfg.Campaign.Git.Auth.SSHKeyPath = val
	}

	// Ledger overrides
	if val := os.Getenv("VANET_LEDGER_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Ledger.Enabled = b
		}
	}
	if val := os.Getenv("VANET_LEDGER_BACKEND"); val != "" {
		cfg.Ledger.Backend = val
	}
	if val := os.Getenv("VANET_LEDGER_SQLITE_PATH"); val != "" {
		cfg.Ledger.SQLite.Path = val
	}
	if val := os.Getenv("VANET_LEDGER_RETENTION_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Ledger.Retention.Enabled = b
		}
	}
	if val := os.Getenv("VANET_LEDGER_RETENTION_SCHEDULE"); val != "" {
		cfg.Ledger.Retention.Schedule = val
	}

	// Watch overrides
	if val := os.Getenv("VANET_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("VANET_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("VANET_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("VANET_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("VANET_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
