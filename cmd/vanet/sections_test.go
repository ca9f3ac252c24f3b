package main

import (
	"path/filepath"
	"testing"
)

func TestListSections(t *testing.T) {
	sectionsFlags.file = filepath.Join("testdata", "motorway.ini")
	sectionsFlags.format = "text"

	if err := listSections(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListSections_JSON(t *testing.T) {
	sectionsFlags.file = filepath.Join("testdata", "motorway.ini")
	sectionsFlags.format = "json"

	if err := listSections(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListSections_UnknownExtends(t *testing.T) {
	sectionsFlags.file = filepath.Join("testdata", "broken.ini")
	sectionsFlags.format = "text"

	if err := listSections(nil, nil); err == nil {
		t.Fatal("expected an error for an unknown extends target")
	}
}

func TestListSections_MissingFile(t *testing.T) {
	sectionsFlags.file = filepath.Join("testdata", "does-not-exist.ini")
	sectionsFlags.format = "text"

	if err := listSections(nil, nil); err == nil {
		t.Fatal("expected an error for a missing scenario file")
	}
}
