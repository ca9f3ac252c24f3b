// Package telemetry provides observability for the vanet toolchain.
//
// # Overview
//
// The telemetry package implements structured logging and Prometheus
// metrics. Both are driven by the telemetry section of the configuration
// and stay out of the way in one-shot CLI runs: logs default to readable
// text on stderr, and the metrics listener only starts in watch mode when
// a listen address is configured.
//
// # Components
//
//   - logging: Structured logging built on log/slog
//   - metrics: Prometheus metrics collection
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//	})
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordLint("pass", 0, elapsed)
package telemetry
