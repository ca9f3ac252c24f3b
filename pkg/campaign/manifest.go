package campaign

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// manifestColumns is the exact header a campaign manifest must carry,
// in order.
var manifestColumns = []string{
	"scenario", "network", "traffic", "obstruction", "duration",
	"demand", "v2x_rate", "tau", "repetitions", "tls",
}

// Row is one campaign configuration: a scenario with its traffic
// setting and the number of runs to prepare for it.
type Row struct {
	// Scenario identifies the run set. It names the output directory,
	// so it must be unique within a manifest.
	Scenario string

	// Network is the road network the scenario plays on.
	Network string

	// Traffic names the traffic demand data set.
	Traffic string

	// Obstruction adds the rolling obstruction to the scenario.
	Obstruction bool

	// Duration is the simulated time horizon.
	Duration time.Duration

	// Demand is the demand-level sequence, one letter per interval of
	// the simulated horizon.
	Demand string

	// V2XRate is the CA service penetration rate in [0, 1].
	V2XRate float64

	// Tau is the drivers' desired time headway in seconds.
	Tau float64

	// Repetitions is how many runs to draw seeds for.
	Repetitions int

	// TLS enables traffic lights.
	TLS bool

	// Line is the manifest line the row was read from.
	Line int
}

// LoadManifest reads and parses a campaign manifest file.
func LoadManifest(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	return ParseManifest(f, path)
}

// ParseManifest parses a semicolon-separated campaign manifest. The
// name is used in error messages. Rows that fail to parse are reported
// individually with their line numbers; the returned rows are the ones
// that parsed.
func ParseManifest(r io.Reader, name string) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &RowError{File: name, Line: 1, Message: "manifest is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest header: %w", err)
	}
	if !columnsMatch(header, manifestColumns) {
		return nil, &RowError{
			File: name,
			Line: 1,
			Message: fmt.Sprintf("manifest header must be %q, got %q",
				strings.Join(manifestColumns, ";"), strings.Join(header, ";")),
		}
	}

	var rows []Row
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
				Message: fmt.Sprintf("expected %d fields", len(manifestColumns)),
			})
			continue
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read manifest: %w", err)
		}

		line, _ := cr.FieldPos(0)
		row, rowErrs := parseRow(record, name, line)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}

		if first, dup := declared[row.Scenario]; dup {
			errs = append(errs, &RowError{
				File:    name,
				Line:    line,
				Message: fmt.Sprintf("duplicate scenario %q, first declared on line %d", row.Scenario, first),
			})
			continue
		}
		declared[row.Scenario] = line

		rows = append(rows, row)
	}

	return rows, errs.ToError()
}

// parseRow converts one manifest record into a typed row, collecting
// every field problem rather than stopping at the first.
func parseRow(record []string, file string, line int) (Row, RowErrors) {
	var errs RowErrors
	fail := func(format string, args ...any) {
		errs = append(errs, &RowError{File: file, Line: line, Message: fmt.Sprintf(format, args...)})
	}

	row := Row{Line: line}

	row.Scenario = strings.TrimSpace(record[0])
	if row.Scenario == "" {
		fail("scenario id cannot be empty")
	}

	row.Network = strings.TrimSpace(record[1])
	if row.Network == "" {
		fail("network cannot be empty")
	}

	row.Traffic = strings.TrimSpace(record[2])
	if row.Traffic == "" {
		fail("traffic cannot be empty")
	}

	if b, err := parseBoolField(record[3]); err != nil {
		fail("obstruction must be 0 or 1, got %q", record[3])
	} else {
		row.Obstruction = b
	}

	if secs, err := parseFloatField(record[4]); err != nil || secs <= 0 {
		fail("duration must be a positive number of seconds, got %q", record[4])
	} else {
		row.Duration = time.Duration(secs * float64(time.Second))
	}

	row.Demand = strings.TrimSpace(record[5])
	if row.Demand == "" {
		fail("demand sequence cannot be empty")
	} else {
		for _, level := range row.Demand {
			if !validDemandLevel(level) {
				fail("unknown demand level %q in sequence %q", string(level), row.Demand)
				break
			}
		}
	}

	if rate, err := parseFloatField(record[6]); err != nil {
		fail("v2x_rate must be a number, got %q", record[6])
	} else if rate < 0 || rate > 1 {
		fail("v2x_rate must be in [0, 1], got %v", rate)
	} else {
		row.V2XRate = rate
	}

	if tau, err := parseFloatField(record[7]); err != nil || tau <= 0 {
		fail("tau must be a positive number of seconds, got %q", record[7])
	} else {
		row.Tau = tau
	}

	if n, err := strconv.Atoi(strings.TrimSpace(record[8])); err != nil || n < 1 {
		fail("repetitions must be a positive integer, got %q", record[8])
	} else {
		row.Repetitions = n
	}

	if b, err := parseBoolField(record[9]); err != nil {
		fail("tls must be 0 or 1, got %q", record[9])
	} else {
		row.TLS = b
	}

	return row, errs
}

// validDemandLevel reports whether a rune names a known demand level.
// Levels a through f are the graded service levels; the remaining
// letters and digits 1 to 3 select fixed saturation factors.
func validDemandLevel(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '1' && r <= '3')
}

// parseFloatField parses a decimal that may use a comma as the decimal
// separator, as spreadsheet exports often do.
func parseFloatField(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// parseBoolField accepts 0/1 and true/false.
func parseBoolField(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// columnsMatch reports whether got carries exactly the expected columns.
func columnsMatch(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}
