package campaign

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// placementColumns is the required header of a roadside-unit placement
// file.
var placementColumns = []string{"rsuID", "x", "y"}

// Placement positions one roadside unit. Coordinates are in meters,
// already projected into the scenario's coordinate frame.
type Placement struct {
	ID string
	X  float64
	Y  float64
}

// LoadPlacements reads and parses a roadside-unit placement file.
func LoadPlacements(path string) ([]Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open placement file: %w", err)
	}
	defer f.Close()

	return ParsePlacements(f, path)
}

// ParsePlacements parses a semicolon-separated placement file. The name
// is used in error messages.
func ParsePlacements(r io.Reader, name string) ([]Placement, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &RowError{File: name, Line: 1, Message: "placement file is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read placement header: %w", err)
	}
	if !columnsMatch(header, placementColumns) {
		return nil, &RowError{
			File: name,
			Line: 1,
			Message: fmt.Sprintf("placement header must be %q, got %q",
				strings.Join(placementColumns, ";"), strings.Join(header, ";")),
		}
	}

	var placements []Placement
	var errs RowErrors
	declared := make(map[string]int)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			errs = append(errs, &RowError{
				File:    name,
				Line:    parseErr.Line,
				Message: fmt.Sprintf("expected %d fields", len(placementColumns)),
			})
			continue
		}
		if err != nil {
			return placements, fmt.Errorf("failed to read placement file: %w", err)
		}

		line, _ := cr.FieldPos(0)
		fail := func(format string, args ...any) {
			errs = append(errs, &RowError{File: name, Line: line, Message: fmt.Sprintf(format, args...)})
		}

		p := Placement{ID: strings.TrimSpace(record[0])}
		if p.ID == "" {
			fail("rsuID cannot be empty")
			continue
		}
		if first, dup := declared[p.ID]; dup {
			fail("duplicate rsuID %q, first declared on line %d", p.ID, first)
			continue
		}
		declared[p.ID] = line

		bad := false
		if x, err := parseFloatField(record[1]); err != nil {
			fail("x must be a number, got %q", record[1])
			bad = true
		} else {
			p.X = x
		}
		if y, err := parseFloatField(record[2]); err != nil {
			fail("y must be a number, got %q", record[2])
			bad = true
		} else {
			p.Y = y
		}
		if bad {
			continue
		}

		placements = append(placements, p)
	}

	return placements, errs.ToError()
}
