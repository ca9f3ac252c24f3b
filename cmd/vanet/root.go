package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vanet-hq/saturn/pkg/cli"
	"vanet-hq/saturn/pkg/config"
	"vanet-hq/saturn/pkg/telemetry/logging"
	"vanet-hq/saturn/pkg/telemetry/metrics"
)

const defaultConfigPath = "config.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vanet",
	Short: "Saturn - scenario configuration toolchain for V2X simulation studies",
	Long: `Saturn resolves hierarchical scenario configurations for vehicular
network simulations.

Scenario files use the OMNeT++ ini dialect: named sections with
inheritance, wildcard patterns over module paths, typed values with
units, and per-run parameter variations. Saturn answers the questions
a simulation campaign asks of such files: is this file well formed,
what value does this module parameter take and why, which RNG stream
feeds this module, and what does a thousand-run campaign look like
on disk.

Commands:
  lint      - Validate scenario files
  query     - Resolve a module parameter with provenance
  streams   - Inspect RNG stream mappings and seeds
  sections  - List sections and their resolution chains
  campaign  - Prepare simulation campaigns from manifests
  runs      - Inspect and maintain the run ledger
  version   - Print version information

Use "vanet [command] --help" for details on each command.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits on error. Commands signal a
// specific exit code, such as lint findings, through *cli.ExitError.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, "Error:", exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// initRuntime loads the configuration and wires logging and metrics for
// one command invocation. A missing config file at the default location
// is not an error; commands then run on built-in defaults so that
// "vanet lint file.ini" works without any setup.
func initRuntime() (*config.Config, *logging.Logger, *metrics.Collector, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && cfgFile == defaultConfigPath {
		config.SetConfig(config.DefaultConfig())
	} else if err := config.Initialize(cfgFile); err != nil {
		return nil, nil, nil, cli.NewConfigError("config", err.Error())
	}
	cfg := config.GetConfig()

	logCfg := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger.Slog())

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	return cfg, logger, collector, nil
}
