/*
Package cli provides command-line interface utilities for Saturn.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the vanet command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results. Tabular results are built as Rows so one
value renders in every format:

	rows := &cli.Rows{Headers: []string{"SECTION", "EXTENDS"}}
	rows.Append("RainyDense", "DenseUrban")

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, rows); err != nil {
		return err
	}

Progress Reporting:

For long-running operations such as campaign generation, use the
progress reporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown

Exit Codes:

Commands whose failure is an expected outcome (lint findings, for
example) return an ExitError so main can map it to a process exit code
without treating it as a malfunction.
*/
package cli
