// Package logging provides structured logging for the vanet toolchain.
//
// The Logger wraps log/slog with level and format selection driven by the
// telemetry configuration. Text output is the default so interactive lint
// runs stay readable; JSON output suits CI pipelines.
//
// Diagnostics are written to stderr. Query results and rendered reports
// go to stdout, so logs never corrupt machine-readable output.
//
// Context helpers carry the scenario path, active section, and run index
// through call chains:
//
//	ctx := logging.WithScenario(ctx, "scenarios/urban.ini")
//	ctx = logging.WithSection(ctx, "DenseTraffic")
//	logger.InfoContext(ctx, "lint passed")
package logging
