package metrics

import (
	"fmt"
	"sync"
	"time"

	"vanet-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in the vanet
// toolchain. It manages metric registration and provides a unified
// interface for recording metrics across all components.
//
// Recording is cheap when metrics are disabled: every record method checks
// the Enabled flag first and returns without touching Prometheus state.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Resolution metrics
	resolutionMetrics *ResolutionMetrics

	// External resource metrics
	resourceMetrics *ResourceMetrics

	// Campaign and ledger metrics
	campaignMetrics *CampaignMetrics

	// Lint and watch metrics
	lintMetrics *LintMetrics

	// Cardinality tracking for the parameter label
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "vanet",
//		Subsystem: "saturn",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.ResolveDurationBuckets) == 0 {
		cfg.ResolveDurationBuckets = config.DefaultResolveDurationBuckets
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(10000),
	}

	c.resolutionMetrics = NewResolutionMetrics(cfg, registry)
	c.resourceMetrics = NewResourceMetrics(cfg, registry)
	c.campaignMetrics = NewCampaignMetrics(cfg, registry)
	c.lintMetrics = NewLintMetrics(cfg, registry)

	return c
}

// RecordScenarioLoad records a scenario load attempt.
//
// Parameters:
//   - status: "ok" or "error"
//   - sections: number of sections in the loaded document
//   - duration: time spent parsing and building the section graph
func (c *Collector) RecordScenarioLoad(status string, sections int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.resolutionMetrics.RecordLoad(status, sections, duration)
}

// RecordResolution records a single parameter resolution.
//
// Parameters:
//   - parameter: parameter name (e.g., "beaconInterval")
//   - outcome: "matched", "default", "unbound", or "error"
//   - duration: resolution latency
//
// Parameter names are user-controlled, so the label is capped by the
// cardinality limiter; names beyond the cap aggregate into "other".
func (c *Collector) RecordResolution(parameter, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("resolution:%s:%s", parameter, outcome)
	if !c.cardinalityLimiter.Allow(labelSet) {
		parameter = "other"
	}

	c.resolutionMetrics.RecordResolution(parameter, outcome, duration)
}

// RecordMemoHit records a resolution served from the memo table.
func (c *Collector) RecordMemoHit() {
	if !c.config.Enabled {
		return
	}

	c.resolutionMetrics.RecordMemoHit()
}

// RecordResourceLoad records an external document load.
//
// Parameters:
//   - format: "xml" or "csv"
//   - status: "ok" or "error"
//   - bytes: document size on disk
func (c *Collector) RecordResourceLoad(format, status string, bytes int64) {
	if !c.config.Enabled {
		return
	}

	c.resourceMetrics.RecordLoad(format, status, bytes)
}

// RecordResourceCacheHit records a document served from the resource cache.
func (c *Collector) RecordResourceCacheHit() {
	if !c.config.Enabled {
		return
	}

	c.resourceMetrics.RecordCacheHit()
}

// RecordRunsPrepared records runs emitted by campaign generation.
//
// Parameters:
//   - study: study identifier from the manifest
//   - count: number of runs prepared
func (c *Collector) RecordRunsPrepared(study string, count int) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("campaign:%s", study)
	if !c.cardinalityLimiter.Allow(labelSet) {
		study = "other"
	}

	c.campaignMetrics.RecordRunsPrepared(study, count)
}

// RecordLedgerWrite records a run record write to the ledger.
//
// Parameters:
//   - status: "written", "failed", or "dropped"
func (c *Collector) RecordLedgerWrite(status string) {
	if !c.config.Enabled {
		return
	}

	c.campaignMetrics.RecordLedgerWrite(status)
}

// RecordLedgerPrune records records deleted by a retention prune.
func (c *Collector) RecordLedgerPrune(deleted int64) {
	if !c.config.Enabled {
		return
	}

	c.campaignMetrics.RecordPrune(deleted)
}

// RecordLint records a lint pass over a scenario file.
//
// Parameters:
//   - result: "pass", "warnings", or "fail"
//   - findings: number of findings reported
//   - duration: lint latency
func (c *Collector) RecordLint(result string, findings int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.lintMetrics.RecordLint(result, findings, duration)
}

// RecordWatchEvent records a filesystem event observed in watch mode.
func (c *Collector) RecordWatchEvent() {
	if !c.config.Enabled {
		return
	}

	c.lintMetrics.RecordWatchEvent()
}

// RecordWatchReload records a debounced re-lint triggered in watch mode.
func (c *Collector) RecordWatchReload() {
	if !c.config.Enabled {
		return
	}

	c.lintMetrics.RecordWatchReload()
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the
// specified maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if the cardinality limit has not been reached yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
