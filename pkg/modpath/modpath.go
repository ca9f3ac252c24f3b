// Package modpath models concrete module-instance paths in the simulation
// topology, e.g. World.node[3].wlan[0].radio. Paths are supplied by the host
// runtime when querying the engine; the engine never constructs them from
// topology data itself.
package modpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoIndex marks a segment that is not part of a module vector.
const NoIndex = -1

// Segment is one step of a module path: a submodule name with an optional
// vector index.
type Segment struct {
	Name  string
	Index int // NoIndex when the segment carries no bracketed index
}

// HasIndex returns true if the segment is a module-vector element.
func (s Segment) HasIndex() bool {
	return s.Index != NoIndex
}

// String returns the segment in its textual form: name or name[index].
func (s Segment) String() string {
	if s.Index == NoIndex {
		return s.Name
	}
	return fmt.Sprintf("%s[%d]", s.Name, s.Index)
}

// Path is an ordered sequence of segments addressing exactly one module
// instance. The zero value is the empty path.
type Path struct {
	Segments []Segment
}

var segmentPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)(?:\[([0-9]+)\])?$`)

// Parse converts a dotted textual path like "World.rsu[0].mobility" into a
// Path. Segment names must start with a letter or underscore; indices must be
// non-negative integers in brackets.
func Parse(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return Path{}, fmt.Errorf("module path is empty")
	}

	parts := strings.Split(s, ".")
	segments := make([]Segment, 0, len(parts))

	for i, part := range parts {
		m := segmentPattern.FindStringSubmatch(part)
		if m == nil {
			return Path{}, fmt.Errorf("invalid module path segment %q at position %d", part, i)
		}

		seg := Segment{Name: m[1], Index: NoIndex}
		if m[2] != "" {
			idx, err := strconv.Atoi(m[2])
			if err != nil {
				return Path{}, fmt.Errorf("invalid index in segment %q: %w", part, err)
			}
			seg.Index = idx
		}
		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compile-time-known paths.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical dotted form of the path. It is stable and
// usable as a map key.
func (p Path) String() string {
	if len(p.Segments) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// Len returns the number of segments in the path.
func (p Path) Len() int {
	return len(p.Segments)
}

// IsEmpty returns true for the zero path.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Leaf returns the final segment, or the zero Segment for the empty path.
func (p Path) Leaf() Segment {
	if len(p.Segments) == 0 {
		return Segment{Index: NoIndex}
	}
	return p.Segments[len(p.Segments)-1]
}
