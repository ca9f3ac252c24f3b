package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"vanet-hq/saturn/pkg/cli"
)

func TestLintScenarioFile(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		wantValid bool
		wantIn    string
	}{
		{
			name:      "valid scenario",
			file:      "motorway.ini",
			wantValid: true,
		},
		{
			name:      "unknown extends target",
			file:      "broken.ini",
			wantValid: false,
			wantIn:    "MissingSection",
		},
		{
			name:      "unknown global directive",
			file:      "broken.ini",
			wantValid: false,
			wantIn:    "bogus-directive",
		},
		{
			name:      "bad directive value",
			file:      "badvalue.ini",
			wantValid: false,
			wantIn:    "sim-time-limit",
		},
		{
			name:      "syntax error",
			file:      "garbled.ini",
			wantValid: false,
			wantIn:    "key = value",
		},
		{
			name:      "missing file",
			file:      "does-not-exist.ini",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lintFlags.strict = false
			result := lintScenarioFile(filepath.Join("testdata", tt.file), 0)

			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (findings: %+v)", result.Valid, tt.wantValid, result.Findings)
			}
			if tt.wantValid && len(result.Findings) != 0 {
				t.Errorf("expected no findings, got %d", len(result.Findings))
			}
			if !tt.wantValid && len(result.Findings) == 0 {
				t.Error("expected findings, got none")
			}
			if tt.wantIn != "" && !findingsMention(result.Findings, tt.wantIn) {
				t.Errorf("no finding mentions %q: %+v", tt.wantIn, result.Findings)
			}
		})
	}
}

func findingsMention(findings []LintFinding, substr string) bool {
	for _, finding := range findings {
		if strings.Contains(finding.Message, substr) {
			return true
		}
	}
	return false
}

func TestLintScenarioFile_FindingLocations(t *testing.T) {
	lintFlags.strict = false
	result := lintScenarioFile(filepath.Join("testdata", "broken.ini"), 0)

	if result.Valid {
		t.Fatal("expected findings")
	}
	for _, finding := range result.Findings {
		if finding.Line <= 0 {
			t.Errorf("finding %q has no line number", finding.Message)
		}
	}
}

func TestLintScenarios(t *testing.T) {
	lintFlags.strict = false
	lintFlags.watchMode = false
	lintFlags.format = "json"

	err := lintScenarios(nil, []string{filepath.Join("testdata", "motorway.ini")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLintScenarios_FindingsExitCode(t *testing.T) {
	lintFlags.strict = false
	lintFlags.watchMode = false
	lintFlags.format = "json"

	err := lintScenarios(nil, []string{
		filepath.Join("testdata", "motorway.ini"),
		filepath.Join("testdata", "broken.ini"),
	})
	if err == nil {
		t.Fatal("expected an error when findings are reported")
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *cli.ExitError, got %T", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
}

func TestWatchRoots(t *testing.T) {
	roots := watchRoots([]string{
		filepath.Join("testdata", "a.ini"),
		filepath.Join("testdata", "b.ini"),
		filepath.Join("other", "c.ini"),
	})

	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2: %v", len(roots), roots)
	}
	if roots[0] != "testdata" || roots[1] != "other" {
		t.Errorf("unexpected roots: %v", roots)
	}
}
