package engine

import (
	"errors"
	"strings"
	"testing"

	sclErrors "vanet-hq/saturn/pkg/scl/errors"
	"vanet-hq/saturn/pkg/sections"
)

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key      string
		wantPath string
		wantLeaf string
		wantOK   bool
	}{
		{"*.node[*].app.beaconInterval", "*.node[*].app", "beaconInterval", true},
		{"**.txPower", "**", "txPower", true},
		{"*.traci.mapper.rng-0", "*.traci.mapper", "rng-0", true},
		{"**.node[2..5].rng-1", "**.node[2..5]", "rng-1", true},
		{"plain", "", "", false},
		{".leading", "", "", false},
		{"trailing.", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			path, leaf, ok := splitKey(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("splitKey(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if path != tt.wantPath || leaf != tt.wantLeaf {
				t.Errorf("splitKey(%q) = (%q, %q), want (%q, %q)",
					tt.key, path, leaf, tt.wantPath, tt.wantLeaf)
			}
		})
	}
}

func TestLoadBytes_UnknownSection(t *testing.T) {
	eng := New(nil, nil, nil)
	_, err := eng.LoadBytes([]byte("**.x = 1\n"), "mem.ini", LoadOptions{Section: "Missing"})

	var use *UnknownSectionError
	if !errors.As(err, &use) {
		t.Fatalf("expected UnknownSectionError, got %T: %v", err, err)
	}
	if use.Name != "Missing" {
		t.Errorf("expected section %q, got %q", "Missing", use.Name)
	}
}

func TestLoadBytes_BadPattern(t *testing.T) {
	eng := New(nil, nil, nil)
	src := "**.node[*].good = 1\n**.no*de.bad = 2\n"
	_, err := eng.LoadBytes([]byte(src), "mem.ini", LoadOptions{})

	var el *sclErrors.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("expected ErrorList, got %T: %v", err, err)
	}
	if !el.HasErrorType(sclErrors.ErrorTypeValidation) {
		t.Errorf("expected a validation error, got: %v", el)
	}
	if !strings.Contains(el.Error(), "no*de") {
		t.Errorf("expected offending pattern in message, got: %v", el)
	}
}

func TestLoadBytes_ExtendsCycle(t *testing.T) {
	eng := New(nil, nil, nil)
	src := `
[Config A]
extends = B

[Config B]
extends = A
`
	_, err := eng.LoadBytes([]byte(src), "mem.ini", LoadOptions{})

	var ce *sections.CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CycleError, got %T: %v", err, err)
	}
}

func TestLoadBytes_NumRngsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "zero",
			src:  "num-rngs = 0\n",
			want: "at least 1",
		},
		{
			name: "not a number",
			src:  "num-rngs = many\n",
			want: "Expected an integer",
		},
		{
			name: "stream out of range",
			src:  "num-rngs = 2\n*.traci.mapper.rng-0 = 5\n",
			want: "out of range",
		},
		{
			name: "seed stream out of range",
			src:  "num-rngs = 1\nseed-3-mt = 42\n",
			want: "num-rngs is 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(nil, nil, nil)
			_, err := eng.LoadBytes([]byte(tt.src), "mem.ini", LoadOptions{})
			if err == nil {
				t.Fatal("expected load error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	eng := New(nil, nil, nil)
	_, err := eng.Load("/nonexistent/scenario.ini")

	var se *sclErrors.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected scl error, got %T: %v", err, err)
	}
	if se.Type != sclErrors.ErrorTypeIO {
		t.Errorf("expected IO error type, got %q", se.Type)
	}
}

func TestLoadBytes_DefaultSectionFallsBackToGeneral(t *testing.T) {
	eng := New(nil, nil, nil)
	scn, err := eng.LoadBytes([]byte("**.x = 1\n"), "mem.ini", LoadOptions{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if scn.ActiveSection() != "General" {
		t.Errorf("expected active section General, got %q", scn.ActiveSection())
	}
}
