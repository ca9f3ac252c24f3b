package value

import (
	"math"
	"sort"
)

// Dimension classifies a physical quantity. Quantities of the same
// dimension convert between units; quantities of different dimensions
// never do.
type Dimension string

const (
	// DimNone marks a plain number with no physical dimension.
	DimNone      Dimension = ""
	DimTime      Dimension = "time"
	DimFrequency Dimension = "frequency"
	DimLength    Dimension = "length"
	DimPower     Dimension = "power"
	DimDataRate  Dimension = "datarate"
	DimSpeed     Dimension = "speed"

	// DimLevel is a logarithmic ratio (dB). Levels are relative and
	// never convert to any linear dimension.
	DimLevel Dimension = "level"
)

// String returns a human-readable dimension name.
func (d Dimension) String() string {
	if d == DimNone {
		return "dimensionless"
	}
	return string(d)
}

// unitDef describes one accepted unit suffix. Linear units scale by
// factor into the canonical unit of their dimension. Logarithmic units
// (dBm, dBW) are delogged first: canonical = 10^(v/10) * factor.
type unitDef struct {
	dim    Dimension
	factor float64
	log    bool
}

var units = map[string]unitDef{
	// time, canonical s
	"ns":  {DimTime, 1e-9, false},
	"us":  {DimTime, 1e-6, false},
	"ms":  {DimTime, 1e-3, false},
	"s":   {DimTime, 1, false},
	"min": {DimTime, 60, false},
	"h":   {DimTime, 3600, false},
	"d":   {DimTime, 86400, false},

	// frequency, canonical Hz
	"Hz":  {DimFrequency, 1, false},
	"kHz": {DimFrequency, 1e3, false},
	"MHz": {DimFrequency, 1e6, false},
	"GHz": {DimFrequency, 1e9, false},

	// length, canonical m
	"mm": {DimLength, 1e-3, false},
	"cm": {DimLength, 1e-2, false},
	"m":  {DimLength, 1, false},
	"km": {DimLength, 1e3, false},

	// power, canonical W
	"uW":  {DimPower, 1e-6, false},
	"mW":  {DimPower, 1e-3, false},
	"W":   {DimPower, 1, false},
	"kW":  {DimPower, 1e3, false},
	"dBm": {DimPower, 1e-3, true},
	"dBW": {DimPower, 1, true},

	// data rate, canonical bps
	"bps":  {DimDataRate, 1, false},
	"kbps": {DimDataRate, 1e3, false},
	"Mbps": {DimDataRate, 1e6, false},
	"Gbps": {DimDataRate, 1e9, false},

	// speed, canonical mps
	"mps":  {DimSpeed, 1, false},
	"kmph": {DimSpeed, 1000.0 / 3600.0, false},

	// level stays in dB
	"dB": {DimLevel, 1, false},
}

var canonical = map[Dimension]string{
	DimTime:      "s",
	DimFrequency: "Hz",
	DimLength:    "m",
	DimPower:     "W",
	DimDataRate:  "bps",
	DimSpeed:     "mps",
	DimLevel:     "dB",
}

// UnitDimension reports the dimension of a unit suffix.
func UnitDimension(symbol string) (Dimension, bool) {
	def, ok := units[symbol]
	if !ok {
		return DimNone, false
	}
	return def.dim, true
}

// CanonicalUnit returns the unit every quantity of the dimension is
// normalized to, or "" for DimNone.
func CanonicalUnit(dim Dimension) string {
	return canonical[dim]
}

// Units lists the accepted unit suffixes for a dimension, sorted. Used
// for suggestions in unknown-unit diagnostics.
func Units(dim Dimension) []string {
	var out []string
	for symbol, def := range units {
		if def.dim == dim {
			out = append(out, symbol)
		}
	}
	sort.Strings(out)
	return out
}

// AllUnits lists every accepted unit suffix, sorted.
func AllUnits() []string {
	out := make([]string, 0, len(units))
	for symbol := range units {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// Convert translates v from one unit to another of the same dimension.
func Convert(v float64, from, to string) (float64, error) {
	fromDef, ok := units[from]
	if !ok {
		return 0, &UnknownUnitError{Unit: from}
	}
	toDef, ok := units[to]
	if !ok {
		return 0, &UnknownUnitError{Unit: to}
	}
	if fromDef.dim != toDef.dim {
		return 0, &UnitMismatchError{Unit: from, Got: fromDef.dim, Want: toDef.dim}
	}
	return fromCanonical(toCanonical(v, fromDef), toDef), nil
}

func toCanonical(v float64, def unitDef) float64 {
	if def.log {
		return math.Pow(10, v/10) * def.factor
	}
	return v * def.factor
}

func fromCanonical(v float64, def unitDef) float64 {
	if def.log {
		return 10 * math.Log10(v/def.factor)
	}
	return v / def.factor
}
