package engine

import (
	"fmt"

	"vanet-hq/saturn/pkg/scl/ast"
)

// UnknownSectionError reports a resolution request against a section that
// does not exist in the loaded scenario.
type UnknownSectionError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Name)
}

// ParameterUnboundError reports a parameter no assignment in the section
// chain matched. A simulation kernel would prompt interactively at this
// point; the resolver treats it as an error so scenarios stay reproducible.
type ParameterUnboundError struct {
	Path    string // Module path of the query
	Param   string // Parameter name
	Section string // Section the resolution started from
}

// Error implements the error interface.
func (e *ParameterUnboundError) Error() string {
	return fmt.Sprintf("parameter %s.%s is not bound in section %q or its ancestors", e.Path, e.Param, e.Section)
}

// DirectiveUnboundError reports a global directive that is not set anywhere
// in the section chain.
type DirectiveUnboundError struct {
	Name    string
	Section string
}

// Error implements the error interface.
func (e *DirectiveUnboundError) Error() string {
	return fmt.Sprintf("directive %q is not set in section %q or its ancestors", e.Name, e.Section)
}

// ValueError reports an assignment that matched a parameter query but whose
// value could not be substituted or parsed into the requested type.
type ValueError struct {
	Path     string       // Module path of the query
	Param    string       // Parameter name
	Location ast.Location // Where the offending assignment lives
	Err      error        // The underlying substitution or parse failure
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Location.IsValid() {
		return fmt.Sprintf("invalid value for %s.%s at %s: %v", e.Path, e.Param, e.Location, e.Err)
	}
	return fmt.Sprintf("invalid value for %s.%s: %v", e.Path, e.Param, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// DirectiveError reports a global directive whose value could not be
// substituted or parsed.
type DirectiveError struct {
	Name     string
	Location ast.Location
	Err      error
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	if e.Location.IsValid() {
		return fmt.Sprintf("invalid value for directive %q at %s: %v", e.Name, e.Location, e.Err)
	}
	return fmt.Sprintf("invalid value for directive %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DirectiveError) Unwrap() error {
	return e.Err
}
