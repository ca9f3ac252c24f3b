// Package metrics provides Prometheus metrics for the vanet toolchain.
//
// The Collector orchestrates four metric groups:
//
//   - ResolutionMetrics: scenario loads and parameter resolution
//   - ResourceMetrics: external XML and CSV document loading
//   - CampaignMetrics: campaign generation and the run ledger
//   - LintMetrics: lint passes and watch mode activity
//
// All metric names carry the configured namespace and subsystem
// (vanet_saturn_* by default). Recording is a no-op when metrics are
// disabled, so callers never need to guard their record calls.
//
// Label values that come from user input (parameter names, study names)
// pass through a cardinality limiter; values beyond the cap aggregate
// into "other" to bound memory on long watch sessions.
package metrics
