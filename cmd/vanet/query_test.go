package main

import (
	"path/filepath"
	"testing"
)

func resetQueryFlags() {
	queryFlags.file = ""
	queryFlags.section = ""
	queryFlags.module = ""
	queryFlags.param = ""
	queryFlags.kind = ""
	queryFlags.unit = ""
	queryFlags.runParams = nil
	queryFlags.runIndex = 0
	queryFlags.format = "text"
}

func TestQueryParameter(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.module = "World.node[3].wlan.radio"
	queryFlags.param = "txPower"

	if err := queryParameter(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryParameter_DerivedSection(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.section = "HighLoadFog"
	queryFlags.module = "World.node[3].wlan.radio"
	queryFlags.param = "txPower"
	queryFlags.format = "json"

	if err := queryParameter(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryParameter_UnitConversion(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.module = "World.node[3].middleware"
	queryFlags.param = "updateInterval"
	queryFlags.kind = "quantity"
	queryFlags.unit = "ms"

	if err := queryParameter(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryParameter_KindMismatch(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.module = "World.node[3].wlan.radio"
	queryFlags.param = "txPower"
	queryFlags.kind = "bool"

	if err := queryParameter(nil, nil); err == nil {
		t.Fatal("expected an error for a kind mismatch")
	}
}

func TestQueryParameter_UnknownParameter(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.module = "World.node[3].wlan.radio"
	queryFlags.param = "antennaGain"

	if err := queryParameter(nil, nil); err == nil {
		t.Fatal("expected an error for an unassigned parameter")
	}
}

func TestQueryParameter_BadModulePath(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.module = "World..node"
	queryFlags.param = "txPower"

	if err := queryParameter(nil, nil); err == nil {
		t.Fatal("expected an error for a malformed module path")
	}
}

func TestQueryParameter_UnknownUnit(t *testing.T) {
	resetQueryFlags()
	queryFlags.file = filepath.Join("testdata", "motorway.ini")
	queryFlags.module = "World.node[3].wlan.radio"
	queryFlags.param = "txPower"
	queryFlags.unit = "furlongs"

	if err := queryParameter(nil, nil); err == nil {
		t.Fatal("expected an error for an unknown unit")
	}
}

func TestParseKindFlag(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "", wantErr: false},
		{in: "quantity", wantErr: false},
		{in: "bool", wantErr: false},
		{in: "docref", wantErr: false},
		{in: "integer", wantErr: true},
		{in: "Quantity", wantErr: true},
	}

	for _, tt := range tests {
		_, err := parseKindFlag(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseKindFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseRunParams(t *testing.T) {
	params, err := parseRunParams([]string{"fleet=200", "pRate=0.45"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["fleet"] != "200" || params["pRate"] != "0.45" {
		t.Errorf("unexpected bindings: %v", params)
	}

	if _, err := parseRunParams([]string{"no-equals"}); err == nil {
		t.Error("expected an error for a binding without '='")
	}
	if _, err := parseRunParams([]string{"=5"}); err == nil {
		t.Error("expected an error for an empty name")
	}

	params, err = parseRunParams(nil)
	if err != nil || params != nil {
		t.Errorf("parseRunParams(nil) = %v, %v, want nil, nil", params, err)
	}
}
