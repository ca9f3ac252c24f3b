package campaign

import (
	"fmt"
	"strings"
)

// RowError reports a problem with one row of a manifest or placement
// file.
type RowError struct {
	// File is the file the row came from.
	File string

	// Line is the 1-based line number of the row.
	Line int

	// Message describes what is wrong with the row.
	Message string
}

// Error returns the error message with file and line context.
func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// RowErrors collects per-row errors so one malformed row does not hide
// problems in the rest of the file.
type RowErrors []*RowError

// Error returns a formatted string containing all row errors.
func (e RowErrors) Error() string {
	if len(e) == 0 {
		return "no row errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d rows failed:\n", len(e)))
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// ToError returns the collection as an error, or nil when empty.
func (e RowErrors) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
