package validator

import (
	"sort"

	"vanet-hq/saturn/pkg/rng"
	"vanet-hq/saturn/pkg/value"
)

// DirectiveType names the value form a reserved global directive takes.
type DirectiveType string

const (
	DirectiveString   DirectiveType = "string"
	DirectiveBool     DirectiveType = "bool"
	DirectiveInt      DirectiveType = "int"
	DirectiveQuantity DirectiveType = "quantity"
)

// DirectiveInfo describes one reserved global directive.
type DirectiveInfo struct {
	Name        string          // Directive name (e.g., "sim-time-limit")
	Type        DirectiveType   // Expected value form
	Dim         value.Dimension // Required dimension when Type is DirectiveQuantity
	Min         int             // Lower bound when Type is DirectiveInt
	Description string          // Human-readable description
}

// Directives defines all global directives the dialect accepts. Every
// dotless key in a scenario file must be one of these or a seed-<k>-mt
// stream seed.
var Directives = map[string]*DirectiveInfo{
	"network": {
		Name:        "network",
		Type:        DirectiveString,
		Description: "Root module type instantiated for the simulation",
	},
	"description": {
		Name:        "description",
		Type:        DirectiveString,
		Description: "Free-form description of the section",
	},
	"sim-time-limit": {
		Name:        "sim-time-limit",
		Type:        DirectiveQuantity,
		Dim:         value.DimTime,
		Description: "Simulated time horizon",
	},
	"num-rngs": {
		Name:        "num-rngs",
		Type:        DirectiveInt,
		Min:         1,
		Description: "Number of physical RNG streams",
	},
	"repeat": {
		Name:        "repeat",
		Type:        DirectiveInt,
		Min:         1,
		Description: "How many runs one configuration expands into",
	},
	"debug-on-errors": {
		Name:        "debug-on-errors",
		Type:        DirectiveBool,
		Description: "Drop into the debugger on runtime errors",
	},
	"print-undisposed": {
		Name:        "print-undisposed",
		Type:        DirectiveBool,
		Description: "Report objects left undeleted at shutdown",
	},
	"cmdenv-express-mode": {
		Name:        "cmdenv-express-mode",
		Type:        DirectiveBool,
		Description: "Suppress per-event console output",
	},
	"record-eventlog": {
		Name:        "record-eventlog",
		Type:        DirectiveBool,
		Description: "Write the event log during the run",
	},
	"result-dir": {
		Name:        "result-dir",
		Type:        DirectiveString,
		Description: "Directory result files are written to",
	},
	"output-scalar-file": {
		Name:        "output-scalar-file",
		Type:        DirectiveString,
		Description: "Path of the scalar result file",
	},
	"output-vector-file": {
		Name:        "output-vector-file",
		Type:        DirectiveString,
		Description: "Path of the vector result file",
	},
}

// seedDirective is the shared entry for the seed-<k>-mt name family.
var seedDirective = &DirectiveInfo{
	Name:        "seed-<k>-mt",
	Type:        DirectiveInt,
	Description: "Mersenne Twister seed for one RNG stream",
}

// LookupDirective finds a reserved directive by name. Stream seeds
// (seed-<k>-mt) are a name family and resolve to a shared entry.
// Returns the directive info and true if found, nil and false otherwise.
func LookupDirective(name string) (*DirectiveInfo, bool) {
	if info, ok := Directives[name]; ok {
		return info, true
	}
	if _, ok := rng.ParseSeedName(name); ok {
		return seedDirective, true
	}
	return nil, false
}

// DirectiveNames returns all reserved directive names, sorted.
// This is used for error suggestions.
func DirectiveNames() []string {
	names := make([]string, 0, len(Directives))
	for name := range Directives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
