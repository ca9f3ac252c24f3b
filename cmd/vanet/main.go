// Vanet is the scenario toolchain of Saturn, a configuration resolution
// engine for large-scale V2X simulation studies.
//
// It parses OMNeT++-style scenario files, resolves module parameters
// through section inheritance and wildcard patterns, and prepares
// reproducible simulation campaigns:
//   - Scenario linting with precise source locations
//   - Parameter resolution with provenance (which assignment won, and where)
//   - RNG stream and seed inspection
//   - Campaign generation from manifest tables, locally or from git
//   - A run ledger with retention for campaign provenance
//
// Usage:
//
//	# Validate scenario files
//	vanet lint scenarios/highway.ini
//
//	# Resolve one parameter with provenance
//	vanet query -f highway.ini -m "World.node[3].wlan.radio" -p txPower
//
//	# Inspect the RNG stream mapping of a module
//	vanet streams -f highway.ini -m World.traci.mapper
//
//	# List sections and their resolution chains
//	vanet sections -f highway.ini
//
//	# Prepare a campaign from a manifest
//	vanet campaign prepare -m manifest.csv --rsu rsu_config.csv
//
//	# Inspect recorded runs
//	vanet runs list --scenario motorway-dense
//
// For complete documentation, see: https://github.com/vanet-hq/saturn
package main

func main() {
	Execute()
}
