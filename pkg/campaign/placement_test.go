package campaign

import (
	"errors"
	"strings"
	"testing"
)

const placementHeader = "rsuID;x;y\n"

func TestParsePlacements_Valid(t *testing.T) {
	input := placementHeader +
		"rsu-north;448.94;1024.50\n" +
		"rsu-south;1210,25;87,00\n"

	placements, err := ParsePlacements(strings.NewReader(input), "rsu.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}

	if placements[0].ID != "rsu-north" {
		t.Errorf("expected id rsu-north, got %q", placements[0].ID)
	}
	if placements[0].X != 448.94 || placements[0].Y != 1024.50 {
		t.Errorf("unexpected coordinates: %v, %v", placements[0].X, placements[0].Y)
	}

	// Comma decimals from spreadsheet exports.
	if placements[1].X != 1210.25 || placements[1].Y != 87.0 {
		t.Errorf("unexpected coordinates: %v, %v", placements[1].X, placements[1].Y)
	}
}

func TestParsePlacements_HeaderMismatch(t *testing.T) {
	input := "id;lon;lat\nr1;8.4;49.0\n"

	_, err := ParsePlacements(strings.NewReader(input), "rsu.csv")
	if err == nil {
		t.Fatal("expected header error")
	}

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError, got %T", err)
	}
	if !strings.Contains(rowErr.Message, "placement header must be") {
		t.Errorf("unexpected message: %s", rowErr.Message)
	}
}

func TestParsePlacements_Empty(t *testing.T) {
	_, err := ParsePlacements(strings.NewReader(""), "rsu.csv")
	if err == nil {
		t.Fatal("expected error for empty file")
	}
	if !strings.Contains(err.Error(), "placement file is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParsePlacements_RowErrors(t *testing.T) {
	input := placementHeader +
		";10.0;20.0\n" +
		"good;10.0;20.0\n" +
		"bad-x;north;20.0\n" +
		"good;11.0;21.0\n"

	placements, err := ParsePlacements(strings.NewReader(input), "rsu.csv")
	if err == nil {
		t.Fatal("expected row errors")
	}

	var errs RowErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected RowErrors, got %T", err)
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 row errors, got %d: %v", len(errs), errs)
	}

	if !strings.Contains(errs[0].Message, "rsuID cannot be empty") {
		t.Errorf("unexpected message: %s", errs[0].Message)
	}
	if !strings.Contains(errs[1].Message, "x must be a number") {
		t.Errorf("unexpected message: %s", errs[1].Message)
	}
	if !strings.Contains(errs[2].Message, `duplicate rsuID "good", first declared on line 3`) {
		t.Errorf("unexpected message: %s", errs[2].Message)
	}

	if len(placements) != 1 || placements[0].ID != "good" {
		t.Fatalf("expected the good row to parse, got %v", placements)
	}
}

func TestLoadPlacements_MissingFile(t *testing.T) {
	_, err := LoadPlacements("testdata/does-not-exist.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to open placement file") {
		t.Errorf("unexpected error: %v", err)
	}
}
