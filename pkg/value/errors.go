package value

import "fmt"

// ParseError reports raw text that cannot become the requested kind.
// The engine surfaces it per-resolution and never substitutes a guess.
type ParseError struct {
	Raw      string // The offending raw text
	Expected Kind   // The requested kind, KindAny when unconstrained
	Message  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Expected != KindAny {
		return fmt.Sprintf("cannot parse %q as %s: %s", e.Raw, e.Expected, e.Message)
	}
	return fmt.Sprintf("cannot parse %q: %s", e.Raw, e.Message)
}

// UnitMismatchError reports a unit whose dimension is incompatible with
// the dimension the context requires.
type UnitMismatchError struct {
	Unit string    // The offending unit suffix
	Got  Dimension // The suffix's dimension
	Want Dimension // The dimension required by the context
}

// Error implements the error interface.
func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit %q is %s, not %s", e.Unit, e.Got, e.Want)
}

// UnknownUnitError reports a unit suffix the dialect does not define.
type UnknownUnitError struct {
	Unit string // The offending unit suffix
}

// Error implements the error interface.
func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Unit)
}
