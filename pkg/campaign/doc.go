// Package campaign generates simulation studies from manifest files.
//
// A manifest is a semicolon-separated table with one row per scenario:
// the road network, traffic setting, simulated horizon, V2X penetration
// rate, and the number of repetitions. Prepare turns each row into a
// scenario directory containing the scenario file and the vehicle
// service registry, draws one seed per repetition from a deterministic
// master seed, and records provenance for every run in the ledger.
//
// Roadside units come from an optional placement file with projected
// coordinates. Scenario templates can also be synced from a git
// repository, see the gitsource subpackage.
package campaign
