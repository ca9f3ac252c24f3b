package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vanet-hq/saturn/pkg/cli"
	"vanet-hq/saturn/pkg/config"
	"vanet-hq/saturn/pkg/ledger"
	"vanet-hq/saturn/pkg/ledger/recorder"
	"vanet-hq/saturn/pkg/telemetry/metrics"
)

// Generator turns a campaign manifest into ready-to-run scenario
// directories, one per manifest row, and records provenance for every
// prepared run.
type Generator struct {
	config    *config.CampaignConfig
	recorder  *recorder.Recorder
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewGenerator creates a campaign generator. A nil config uses defaults,
// a nil logger uses slog.Default, a nil recorder disables provenance
// recording, and a nil collector disables metrics.
func NewGenerator(cfg *config.CampaignConfig, rec *recorder.Recorder, logger *slog.Logger, collector *metrics.Collector) *Generator {
	if cfg == nil {
		cfg = &config.CampaignConfig{OutputDir: config.DefaultCampaignOutputDir}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		config:    cfg,
		recorder:  rec,
		logger:    logger.With("component", "campaign.generator"),
		collector: collector,
	}
}

// PrepareRequest describes one campaign preparation.
type PrepareRequest struct {
	// ManifestPath is the campaign manifest to prepare.
	ManifestPath string

	// PlacementPath optionally adds roadside units from a placement
	// file. Empty prepares scenarios without roadside units.
	PlacementPath string

	// OutputDir overrides the configured output directory.
	OutputDir string

	// MasterSeed overrides the configured master seed.
	MasterSeed int64

	// Progress optionally reports per-scenario progress.
	Progress cli.ProgressReporter
}

// PreparedRun is one run of a prepared scenario.
type PreparedRun struct {
	Scenario   string `json:"scenario"`
	RunIndex   int    `json:"run_index"`
	Seed       int64  `json:"seed"`
	ConfigPath string `json:"config_path"`
	ConfigHash string `json:"config_hash"`
}

// PrepareResult summarizes a campaign preparation.
type PrepareResult struct {
	MasterSeed int64         `json:"master_seed"`
	Scenarios  int           `json:"scenarios"`
	Runs       []PreparedRun `json:"runs"`
	Files      []string      `json:"files"`
}

// Prepare reads the manifest, draws seeds, and writes one scenario
// directory per row. Preparation stops at the first scenario that fails
// to write; files already emitted stay on disk.
func (g *Generator) Prepare(ctx context.Context, req *PrepareRequest) (*PrepareResult, error) {
	rows, err := LoadManifest(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	var placements []Placement
	if req.PlacementPath != "" {
		placements, err = LoadPlacements(req.PlacementPath)
		if err != nil {
			return nil, err
		}
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = g.config.OutputDir
	}
	if outDir == "" {
		outDir = config.DefaultCampaignOutputDir
	}

	master := req.MasterSeed
	if master == 0 {
		master = g.config.MasterSeed
	}
	if master == 0 {
		master = time.Now().UnixNano()
		g.logger.Info("no master seed configured, drew one from the clock",
			"master_seed", master,
		)
	}

	if req.Progress != nil {
		req.Progress.Start(int64(len(rows)))
	}

	result := &PrepareResult{
		MasterSeed: master,
		Scenarios:  len(rows),
	}

	for i, row := range rows {
		if ctx.Err() != nil {
			err := fmt.Errorf("prepare cancelled after %d of %d scenarios: %w", i, len(rows), ctx.Err())
			if req.Progress != nil {
				req.Progress.Error(err)
			}
			return nil, err
		}

		runs, files, err := g.prepareRow(ctx, row, i, master, outDir, placements)
		if err != nil {
			err = fmt.Errorf("scenario %q: %w", row.Scenario, err)
			if req.Progress != nil {
				req.Progress.Error(err)
			}
			return nil, err
		}

		result.Runs = append(result.Runs, runs...)
		result.Files = append(result.Files, files...)

		if req.Progress != nil {
			req.Progress.Update(int64(i + 1))
		}
	}

	if req.Progress != nil {
		req.Progress.Finish()
	}

	g.logger.Info("campaign prepared",
		"scenarios", result.Scenarios,
		"runs", len(result.Runs),
		"master_seed", master,
		"output_dir", outDir,
	)

	return result, nil
}

// prepareRow emits one scenario directory and records its runs.
func (g *Generator) prepareRow(ctx context.Context, row Row, rowIndex int, master int64, outDir string, placements []Placement) ([]PreparedRun, []string, error) {
	// Offset the master per row so every scenario draws its own seed list.
	seeds, err := DrawSeeds(master+int64(rowIndex), row.Repetitions)
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Join(outDir, row.Scenario)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}

	servicesPath := filepath.Join(dir, servicesFileName)
	if err := os.WriteFile(servicesPath, renderServices(row.V2XRate), 0o644); err != nil {
		return nil, nil, fmt.Errorf("failed to write %s: %w", servicesFileName, err)
	}

	scenarioData := renderScenario(row, seeds, placements)
	scenarioPath := filepath.Join(dir, scenarioFileName)
	if err := os.WriteFile(scenarioPath, scenarioData, 0o644); err != nil {
		return nil, nil, fmt.Errorf("failed to write %s: %w", scenarioFileName, err)
	}

	hash := recorder.HashContent(scenarioData)

	runs := make([]PreparedRun, 0, len(seeds))
	for k, seed := range seeds {
		runs = append(runs, PreparedRun{
			Scenario:   row.Scenario,
			RunIndex:   k,
			Seed:       seed,
			ConfigPath: scenarioPath,
			ConfigHash: hash,
		})

		if g.recorder != nil {
			record := &ledger.RunRecord{
				ScenarioID: row.Scenario,
				RunIndex:   k,
				Seed:       seed,
				ConfigHash: hash,
				ConfigPath: scenarioPath,
			}
			if err := g.recorder.Record(ctx, record); err != nil {
				g.logger.Warn("failed to record run",
					"scenario", row.Scenario,
					"run_index", k,
					"error", err,
				)
			}
		}
	}

	if g.collector != nil {
		g.collector.RecordRunsPrepared(row.Scenario, len(seeds))
	}

	g.logger.Debug("scenario prepared",
		"scenario", row.Scenario,
		"runs", len(seeds),
		"roadside_units", len(placements),
		"config_hash", hash,
	)

	return runs, []string{scenarioPath, servicesPath}, nil
}
