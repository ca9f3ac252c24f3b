package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"vanet-hq/saturn/pkg/cli"
	sclerrors "vanet-hq/saturn/pkg/scl/errors"
	"vanet-hq/saturn/pkg/scl/parser"
	"vanet-hq/saturn/pkg/scl/validator"
	"vanet-hq/saturn/pkg/telemetry/metrics"
	"vanet-hq/saturn/pkg/watch"
)

var lintFlags struct {
	strict    bool
	watchMode bool
	format    string
}

var lintCmd = &cobra.Command{
	Use:   "lint FILE...",
	Short: "Validate scenario files",
	Long: `Validate scenario files for syntax and semantic errors.

The lint command parses each file and checks everything short of full
resolution: grammar, wildcard patterns, index ranges, inheritance
targets and cycles, duplicate keys, and typed values of the directives
it knows about. Findings carry file, line, and column, and where there
is an obvious fix, a suggestion.

Examples:
  # Lint a single file
  vanet lint highway.ini

  # Lint several files at once
  vanet lint scenarios/*.ini

  # Treat warnings as errors
  vanet lint highway.ini --strict

  # Machine-readable output for CI
  vanet lint highway.ini --format json

  # Re-lint whenever a watched file changes
  vanet lint highway.ini --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: lintScenarios,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().BoolVar(&lintFlags.watchMode, "watch", false, "re-lint when watched files change")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the validation outcome for a single scenario file.
type LintResult struct {
	File     string        `json:"file"`
	Valid    bool          `json:"valid"`
	Findings []LintFinding `json:"findings,omitempty"`
}

// LintFinding is one problem found in a scenario file.
type LintFinding struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintScenarios(cmd *cobra.Command, args []string) error {
	cfg, _, collector, err := initRuntime()
	if err != nil {
		return err
	}

	lintErr := runLint(args, cfg.Engine.MaxFileSize, collector)
	if !lintFlags.watchMode {
		return lintErr
	}

	// Watch mode never exits on findings; reporting them on each save
	// is the point of watching.
	ctx := cli.SetupSignalHandler()

	if collector != nil && cfg.Telemetry.Metrics.ListenAddress != "" {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		srv := &http.Server{Addr: cfg.Telemetry.Metrics.ListenAddress, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	var relintMu sync.Mutex
	relint := func() error {
		relintMu.Lock()
		defer relintMu.Unlock()
		if err := runLint(args, cfg.Engine.MaxFileSize, collector); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	}

	roots := watchRoots(args)
	var wg sync.WaitGroup
	watchErrs := make(chan error, len(roots))
	for _, root := range roots {
		wcfg := watch.DefaultConfig()
		wcfg.Path = root
		if cfg.Watch.Debounce > 0 {
			wcfg.Debounce = cfg.Watch.Debounce
		}

		watcher, err := watch.New(wcfg, slog.Default(), collector)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		wg.Add(1)
		go func(w *watch.Watcher) {
			defer wg.Done()
			watchErrs <- w.Watch(ctx, relint)
		}(watcher)
	}

	fmt.Printf("\nWatching %d directory(ies) for changes, Ctrl+C to stop\n", len(roots))
	wg.Wait()
	close(watchErrs)
	for err := range watchErrs {
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
	}
	return nil
}

// watchRoots maps lint targets to the directories to watch. Editors
// replace files on save, so watching the parent directory survives the
// delete-and-rename dance.
func watchRoots(files []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, file := range files {
		dir := filepath.Dir(file)
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

func runLint(files []string, maxFileSize int64, collector *metrics.Collector) error {
	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		start := time.Now()
		result := lintScenarioFile(file, maxFileSize)
		results = append(results, result)

		if collector != nil {
			status := "pass"
			if !result.Valid {
				status = "fail"
			}
			collector.RecordLint(status, len(result.Findings), time.Since(start))
		}
	}

	if lintFlags.format == "json" {
		if err := outputLintJSON(results); err != nil {
			return err
		}
	} else {
		outputLintText(results)
	}

	problems := 0
	failed := 0
	for _, result := range results {
		problems += len(result.Findings)
		if !result.Valid {
			failed++
		}
	}
	if problems > 0 {
		return cli.NewExitError(1, fmt.Errorf("lint: %d problem(s) in %d file(s)", problems, failed))
	}
	return nil
}

func lintScenarioFile(path string, maxFileSize int64) LintResult {
	result := LintResult{File: path, Valid: true}

	p := parser.NewParser().WithStrictMode(lintFlags.strict)
	if maxFileSize > 0 {
		p = p.WithMaxFileSize(maxFileSize)
	}

	doc, err := p.Parse(path)
	if err != nil {
		result.Valid = false
		result.Findings = appendFindings(result.Findings, err)
		return result
	}

	if err := validator.NewValidator().Validate(doc); err != nil {
		result.Valid = false
		result.Findings = appendFindings(result.Findings, err)
	}

	return result
}

func appendFindings(findings []LintFinding, err error) []LintFinding {
	switch e := err.(type) {
	case *sclerrors.ErrorList:
		for _, one := range e.Errors {
			findings = append(findings, findingFrom(one))
		}
	case *sclerrors.Error:
		findings = append(findings, findingFrom(e))
	default:
		findings = append(findings, LintFinding{Message: err.Error()})
	}
	return findings
}

func findingFrom(e *sclerrors.Error) LintFinding {
	return LintFinding{
		Line:       e.Location.Line,
		Column:     e.Location.Column,
		Type:       string(e.Type),
		Message:    e.Message,
		Suggestion: e.Suggestion,
	}
}

func outputLintText(results []LintResult) {
	problems := 0

	for _, result := range results {
		fmt.Printf("Linting %s...\n", result.File)

		if result.Valid {
			fmt.Println("✓ No problems found")
		}

		for _, finding := range result.Findings {
			fmt.Printf("✗ %s", finding.Message)
			if finding.Line > 0 {
				fmt.Printf(" (line %d", finding.Line)
				if finding.Column > 0 {
					fmt.Printf(", col %d", finding.Column)
				}
				fmt.Print(")")
			}
			if finding.Type != "" {
				fmt.Printf(" [%s]", finding.Type)
			}
			fmt.Println()
			if finding.Suggestion != "" {
				fmt.Printf("  suggestion: %s\n", finding.Suggestion)
			}
			problems++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  Files:    %d\n", len(results))
	fmt.Printf("  Problems: %d\n", problems)
}

func outputLintJSON(results []LintResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
