// Package value parses raw assignment text into typed values.
//
// A raw string becomes exactly one member of a closed set of kinds:
// quantity, bool, string, document reference, distribution expression,
// array, or object. The caller may pass an expected kind (and, for
// quantities, an expected dimension) to narrow parsing; there is no
// coercion between kinds and no guessing on mismatch.
//
// # Quantities
//
// A quantity is a signed decimal with an optional unit suffix:
//
//	47.9 mW
//	5.9GHz
//	-3
//
// Units normalize into the canonical unit of their dimension at parse
// time, so 47.9 mW and 0.0479 W compare equal. Logarithmic power units
// (dBm, dBW) are delogged into watts. A dB level is relative and never
// converts to a linear dimension; a level where a length, time, or
// other linear dimension is expected is a UnitMismatchError.
//
// # Document References
//
// xmldoc("path") and csvdoc("path") parse into a DocumentRef without
// touching the filesystem. The host resolves the reference through the
// resource cache when it first needs the document.
//
// # Expressions
//
// uniform, normal, exponential and intuniform parse into an Expression
// the host samples against a seeded generator. Arguments must share one
// dimension and the sample carries it.
//
// # Variables
//
// Substitute expands ${name} and ${name=default} references textually
// before kind parsing. Comma-separated defaults are per-repetition
// lists selected by the run index, which is how campaign seeds stay
// reproducible.
package value
