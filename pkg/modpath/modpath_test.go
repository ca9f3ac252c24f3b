package modpath

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		segments int
		want     string
	}{
		{
			name:     "single segment",
			input:    "World",
			segments: 1,
			want:     "World",
		},
		{
			name:     "nested without indices",
			input:    "World.radioMedium",
			segments: 2,
			want:     "World.radioMedium",
		},
		{
			name:     "vector element",
			input:    "World.rsu[0].mobility",
			segments: 3,
			want:     "World.rsu[0].mobility",
		},
		{
			name:     "deep path with two indices",
			input:    "World.node[3].wlan[0].radio",
			segments: 4,
			want:     "World.node[3].wlan[0].radio",
		},
		{
			name:     "hyphen and underscore in names",
			input:    "World.traci.mapper_unit.sub-module",
			segments: 4,
			want:     "World.traci.mapper_unit.sub-module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if p.Len() != tt.segments {
				t.Errorf("Parse(%q) has %d segments, want %d", tt.input, p.Len(), tt.segments)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "empty segment", input: "World..node"},
		{name: "trailing dot", input: "World.node."},
		{name: "negative index", input: "node[-1]"},
		{name: "unclosed bracket", input: "node[3"},
		{name: "non-numeric index", input: "node[abc]"},
		{name: "name starts with digit", input: "3node"},
		{name: "wildcard is not a path", input: "World.node[*]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.input)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	indexed := Segment{Name: "rsu", Index: 2}
	if !indexed.HasIndex() {
		t.Error("indexed segment HasIndex() = false, want true")
	}
	if got := indexed.String(); got != "rsu[2]" {
		t.Errorf("indexed segment String() = %q, want %q", got, "rsu[2]")
	}

	plain := Segment{Name: "mobility", Index: NoIndex}
	if plain.HasIndex() {
		t.Error("plain segment HasIndex() = true, want false")
	}
	if got := plain.String(); got != "mobility" {
		t.Errorf("plain segment String() = %q, want %q", got, "mobility")
	}
}

func TestLeaf(t *testing.T) {
	p := MustParse("World.node[3].wlan[0]")
	leaf := p.Leaf()
	if leaf.Name != "wlan" || leaf.Index != 0 {
		t.Errorf("Leaf() = %v, want wlan[0]", leaf)
	}

	var empty Path
	if empty.Leaf().HasIndex() {
		t.Error("Leaf() of empty path should carry NoIndex")
	}
}
