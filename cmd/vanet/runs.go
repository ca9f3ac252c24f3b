package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vanet-hq/saturn/pkg/cli"
	"vanet-hq/saturn/pkg/config"
	"vanet-hq/saturn/pkg/ledger"
	"vanet-hq/saturn/pkg/ledger/retention"
	"vanet-hq/saturn/pkg/ledger/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and maintain the run ledger",
	Long: `Inspect and maintain the run ledger.

Every run prepared by "vanet campaign prepare" is recorded with its
scenario, run index, seed, and the hash of the rendered configuration.
The ledger answers "which exact configuration produced run 17 of
motorway-dense" long after the campaign directories are gone.

Subcommands:
  list  - List recorded runs
  prune - Delete old run records

Examples:
  # Recent runs of one scenario
  vanet runs list --scenario motorway-dense --limit 20

  # Find the run with a specific seed
  vanet runs list --seed 72089534

  # Apply the configured retention policy
  vanet runs prune

  # See what a stricter policy would delete
  vanet runs prune --max-age-days 30 --dry-run`,
}

var runsListFlags struct {
	scenario string
	seed     int64
	since    string
	until    string
	limit    int
	offset   int
	sortBy   string
	order    string
	format   string
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE:  listRuns,
}

var runsPruneFlags struct {
	maxAgeDays int
	maxRecords int64
	dryRun     bool
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old run records",
	RunE:  pruneRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsPruneCmd)

	runsListCmd.Flags().StringVar(&runsListFlags.scenario, "scenario", "", "filter by scenario id")
	runsListCmd.Flags().Int64Var(&runsListFlags.seed, "seed", 0, "filter by exact seed")
	runsListCmd.Flags().StringVar(&runsListFlags.since, "since", "", "only runs created at or after this RFC3339 time")
	runsListCmd.Flags().StringVar(&runsListFlags.until, "until", "", "only runs created at or before this RFC3339 time")
	runsListCmd.Flags().IntVar(&runsListFlags.limit, "limit", 100, "maximum records to return")
	runsListCmd.Flags().IntVar(&runsListFlags.offset, "offset", 0, "records to skip, for pagination")
	runsListCmd.Flags().StringVar(&runsListFlags.sortBy, "sort", "created_at", "sort column: created_at, scenario_id, run_index, seed")
	runsListCmd.Flags().StringVar(&runsListFlags.order, "order", "desc", "sort order: asc, desc")
	runsListCmd.Flags().StringVar(&runsListFlags.format, "format", "text", "output format: text, json, csv")

	runsPruneCmd.Flags().IntVar(&runsPruneFlags.maxAgeDays, "max-age-days", 0, "delete records older than this many days (0 uses config)")
	runsPruneCmd.Flags().Int64Var(&runsPruneFlags.maxRecords, "max-records", 0, "keep at most this many records, oldest go first (0 uses config)")
	runsPruneCmd.Flags().BoolVar(&runsPruneFlags.dryRun, "dry-run", false, "report what would be deleted without deleting")
}

// openLedgerStorage opens the configured ledger backend.
func openLedgerStorage(cfg *config.Config) (ledger.Storage, error) {
	switch cfg.Ledger.Backend {
	case "sqlite", "":
		scfg := storage.DefaultSQLiteConfig()
		if cfg.Ledger.SQLite.Path != "" {
			scfg.Path = cfg.Ledger.SQLite.Path
		}
		if cfg.Ledger.SQLite.MaxOpenConns > 0 {
			scfg.MaxOpenConns = cfg.Ledger.SQLite.MaxOpenConns
		}
		if cfg.Ledger.SQLite.MaxIdleConns > 0 {
			scfg.MaxIdleConns = cfg.Ledger.SQLite.MaxIdleConns
		}
		if cfg.Ledger.SQLite.BusyTimeout > 0 {
			scfg.BusyTimeout = cfg.Ledger.SQLite.BusyTimeout
		}
		return storage.NewSQLiteStorage(scfg)
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s (supported: sqlite, memory)", cfg.Ledger.Backend)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, _, _, err := initRuntime()
	if err != nil {
		return err
	}

	store, err := openLedgerStorage(cfg)
	if err != nil {
		return cli.NewCommandError("runs", err)
	}
	defer store.Close()

	query := &ledger.Query{
		ScenarioID: runsListFlags.scenario,
		Limit:      runsListFlags.limit,
		Offset:     runsListFlags.offset,
		SortBy:     runsListFlags.sortBy,
		SortOrder:  runsListFlags.order,
	}
	if runsListFlags.seed != 0 {
		query.Seed = &runsListFlags.seed
	}
	if runsListFlags.since != "" {
		t, err := time.Parse(time.RFC3339, runsListFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		query.StartTime = &t
	}
	if runsListFlags.until != "" {
		t, err := time.Parse(time.RFC3339, runsListFlags.until)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		query.EndTime = &t
	}

	ctx := context.Background()
	records, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("runs", err)
	}
	total, err := store.Count(ctx, query)
	if err != nil {
		return cli.NewCommandError("runs", err)
	}

	rows := &cli.Rows{Headers: []string{"ID", "SCENARIO", "RUN", "SEED", "HASH", "CREATED"}}
	for _, record := range records {
		rows.Append(
			record.ID,
			record.ScenarioID,
			strconv.Itoa(record.RunIndex),
			strconv.FormatInt(record.Seed, 10),
			shortHash(record.ConfigHash),
			record.CreatedAt.Format(time.RFC3339),
		)
	}

	formatter := cli.NewFormatter(cli.OutputFormat(runsListFlags.format))
	if err := formatter.FormatTo(os.Stdout, rows); err != nil {
		return err
	}

	if runsListFlags.format == "text" && total > int64(len(records)) {
		fmt.Printf("\n%d of %d record(s) shown; use --limit and --offset for more\n", len(records), total)
	}
	return nil
}

// shortHash abbreviates a config hash for table output.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func pruneRuns(cmd *cobra.Command, args []string) error {
	cfg, logger, collector, err := initRuntime()
	if err != nil {
		return err
	}

	store, err := openLedgerStorage(cfg)
	if err != nil {
		return cli.NewCommandError("runs", err)
	}
	defer store.Close()

	rcfg := &retention.Config{
		MaxAgeDays: cfg.Ledger.Retention.MaxAgeDays,
		MaxRecords: cfg.Ledger.Retention.MaxRecords,
		Schedule:   cfg.Ledger.Retention.Schedule,
		DryRun:     cfg.Ledger.Retention.DryRun || runsPruneFlags.dryRun,
	}
	if runsPruneFlags.maxAgeDays > 0 {
		rcfg.MaxAgeDays = runsPruneFlags.maxAgeDays
	}
	if runsPruneFlags.maxRecords > 0 {
		rcfg.MaxRecords = runsPruneFlags.maxRecords
	}

	pruner := retention.NewPruner(store, rcfg, logger.Slog(), collector)
	deleted, err := pruner.Prune(cli.SetupSignalHandler())
	if err != nil {
		return cli.NewCommandError("runs", err)
	}

	if rcfg.DryRun {
		fmt.Printf("Dry run: %d record(s) would be deleted\n", deleted)
	} else {
		fmt.Printf("✓ Pruned %d record(s)\n", deleted)
	}
	return nil
}
