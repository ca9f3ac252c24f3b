package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vanet-hq/saturn/pkg/campaign"
	"vanet-hq/saturn/pkg/campaign/gitsource"
	"vanet-hq/saturn/pkg/cli"
	"vanet-hq/saturn/pkg/config"
	"vanet-hq/saturn/pkg/ledger/recorder"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Prepare simulation campaigns from manifests",
	Long: `Prepare simulation campaigns from manifest tables.

A manifest is a semicolon-separated table with one row per scenario:
name, traffic inputs, vehicle counts, penetration rates, and repeat
counts. Preparation draws per-run seeds from a master seed, renders
one scenario directory per row, and records every run in the ledger.

Subcommands:
  prepare - Generate scenario directories from a manifest

Examples:
  # Prepare from a local manifest with roadside units
  vanet campaign prepare -m manifest.csv --rsu rsu_config.csv

  # Prepare from a template repository
  vanet campaign prepare --from-git https://github.com/vanet-hq/templates.git -m manifest.csv`,
}

var campaignPrepareFlags struct {
	manifest   string
	placement  string
	output     string
	masterSeed int64
	fromGit    string
	branch     string
	revision   string
	format     string
}

var campaignPrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Generate scenario directories from a manifest",
	Long: `Generate one scenario directory per manifest row.

Each directory receives an omnetpp.ini rendered from the row, a
services.xml, and a summary line in the campaign index. Seeds are
drawn deterministically from the master seed, so re-running prepare
with the same manifest and seed reproduces the campaign bit for bit.

With --from-git, the manifest and placement paths are resolved inside
a synced checkout of the given repository. --rev pins a commit or tag
so a campaign can name the exact template state it was built from.

Examples:
  # Local manifest, fresh master seed
  vanet campaign prepare -m manifest.csv

  # Reproducible campaign with roadside units
  vanet campaign prepare -m manifest.csv --rsu rsu_config.csv --master-seed 424242

  # From a pinned template repository
  vanet campaign prepare --from-git git@github.com:vanet-hq/templates.git --rev v2.3.0 -m manifest.csv`,
	RunE: prepareCampaign,
}

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignPrepareCmd)

	campaignPrepareCmd.Flags().StringVarP(&campaignPrepareFlags.manifest, "manifest", "m", "", "campaign manifest file (required)")
	campaignPrepareCmd.Flags().StringVar(&campaignPrepareFlags.placement, "rsu", "", "roadside unit placement file")
	campaignPrepareCmd.Flags().StringVarP(&campaignPrepareFlags.output, "output", "o", "", "output directory (default: from config)")
	campaignPrepareCmd.Flags().Int64Var(&campaignPrepareFlags.masterSeed, "master-seed", 0, "master seed for per-run seed draws (0 draws a fresh one)")
	campaignPrepareCmd.Flags().StringVar(&campaignPrepareFlags.fromGit, "from-git", "", "sync templates from this repository before preparing")
	campaignPrepareCmd.Flags().StringVar(&campaignPrepareFlags.branch, "branch", "", "branch to track with --from-git (default: from config)")
	campaignPrepareCmd.Flags().StringVar(&campaignPrepareFlags.revision, "rev", "", "pin a commit or tag with --from-git")
	campaignPrepareCmd.Flags().StringVar(&campaignPrepareFlags.format, "format", "text", "output format: text, json")

	_ = campaignPrepareCmd.MarkFlagRequired("manifest")
}

func prepareCampaign(cmd *cobra.Command, args []string) error {
	cfg, logger, collector, err := initRuntime()
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	manifestPath := campaignPrepareFlags.manifest
	placementPath := campaignPrepareFlags.placement

	if campaignPrepareFlags.fromGit != "" {
		gitCfg := cfg.Campaign.Git
		gitCfg.Repository = campaignPrepareFlags.fromGit
		if campaignPrepareFlags.branch != "" {
			gitCfg.Branch = campaignPrepareFlags.branch
		}
		if gitCfg.Branch == "" {
			gitCfg.Branch = config.DefaultGitBranch
		}
		if campaignPrepareFlags.revision != "" {
			gitCfg.Revision = campaignPrepareFlags.revision
		}

		repo, err := gitsource.NewRepository(&gitCfg, logger.Slog())
		if err != nil {
			return cli.NewCommandError("campaign", err)
		}
		synced, err := repo.Sync(ctx)
		if err != nil {
			return cli.NewCommandError("campaign", err)
		}
		fmt.Printf("✓ Templates synced at %s\n", synced.ToSHA[:8])

		manifestPath = resolveInCheckout(repo.Path(), manifestPath)
		placementPath = resolveInCheckout(repo.Path(), placementPath)
	}

	var rec *recorder.Recorder
	if cfg.Ledger.Enabled {
		store, err := openLedgerStorage(cfg)
		if err != nil {
			return cli.NewCommandError("campaign", err)
		}
		defer store.Close()

		rec = recorder.New(store, &recorder.Config{
			Enabled:      true,
			AsyncBuffer:  cfg.Ledger.Recorder.AsyncBuffer,
			WriteTimeout: cfg.Ledger.Recorder.WriteTimeout,
		}, logger.Slog(), collector)
		defer rec.Close()
	}

	generator := campaign.NewGenerator(&cfg.Campaign, rec, logger.Slog(), collector)

	result, err := generator.Prepare(ctx, &campaign.PrepareRequest{
		ManifestPath:  manifestPath,
		PlacementPath: placementPath,
		OutputDir:     campaignPrepareFlags.output,
		MasterSeed:    campaignPrepareFlags.masterSeed,
		Progress:      cli.NewProgressReporter(os.Stdout),
	})
	if err != nil {
		return cli.NewCommandError("campaign", err)
	}

	if campaignPrepareFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Println()
	fmt.Printf("✓ Prepared %d run(s) across %d scenario(s)\n", len(result.Runs), result.Scenarios)
	fmt.Printf("  master seed: %d\n", result.MasterSeed)
	for _, file := range result.Files {
		fmt.Printf("  wrote %s\n", file)
	}
	return nil
}

// resolveInCheckout roots a relative path inside the synced checkout.
// Absolute paths and empty paths pass through untouched.
func resolveInCheckout(checkout, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(checkout, path)
}
