// Package pattern compiles wildcard module-path patterns such as
// *.rsu[*].middleware.services into matchable structures with a precomputed
// specificity score. Patterns select which assignments apply to which
// concrete module instances; the resolver uses specificity to pick the most
// targeted match.
package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"vanet-hq/saturn/pkg/modpath"
)

// CompileError reports a malformed pattern string.
type CompileError struct {
	Pattern string // The offending pattern text
	Message string // What was wrong with it
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Message)
}

// segmentKind discriminates the matcher forms a pattern segment can take.
type segmentKind int

const (
	segLiteral    segmentKind = iota // exact submodule name
	segStar                          // * — exactly one segment, any name
	segDoubleStar                    // ** — zero or more consecutive segments
)

// indexKind discriminates the bracket forms attachable to a segment.
type indexKind int

const (
	idxNone  indexKind = iota // no brackets: matches only unindexed segments
	idxExact                  // [n]
	idxRange                  // [a..b], inclusive
	idxAny                    // [*]
)

type segment struct {
	kind      segmentKind
	name      string // literal name when kind == segLiteral
	index     indexKind
	low, high int // bounds when index is idxExact (low==high) or idxRange
}

// matchOne reports whether this segment matcher accepts a single path segment.
func (s segment) matchOne(ps modpath.Segment) bool {
	if s.kind == segLiteral && s.name != ps.Name {
		return false
	}

	switch s.index {
	case idxNone:
		// A bare * accepts indexed segments too; a bare literal does not.
		if s.kind == segLiteral {
			return !ps.HasIndex()
		}
		return true
	case idxExact, idxRange:
		return ps.HasIndex() && ps.Index >= s.low && ps.Index <= s.high
	case idxAny:
		return ps.HasIndex()
	default:
		return false
	}
}

// Pattern is a compiled wildcard path pattern. Patterns are immutable after
// compilation and safe for concurrent use.
type Pattern struct {
	raw           string
	segments      []segment
	specificity   int
	literalPrefix int
}

// Compile parses a wildcard path pattern into a Pattern. It fails on empty
// segments, malformed or unclosed brackets, reversed ranges, and indices
// attached to a multi-level wildcard.
func Compile(raw string) (*Pattern, error) {
	parts, err := splitSegments(raw)
	if err != nil {
		return nil, &CompileError{Pattern: raw, Message: err.Error()}
	}

	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		seg, err := compileSegment(part)
		if err != nil {
			return nil, &CompileError{Pattern: raw, Message: err.Error()}
		}
		segments = append(segments, seg)
	}

	p := &Pattern{raw: raw, segments: segments}
	p.specificity = computeSpecificity(segments)
	p.literalPrefix = literalPrefixLen(segments)
	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// compile-time-known patterns.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// splitSegments splits a pattern on dots that are not inside brackets, so
// range forms like node[2..5] survive intact.
func splitSegments(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("pattern is empty")
	}

	var parts []string
	var sb strings.Builder
	inBracket := false

	for _, r := range raw {
		switch {
		case r == '[':
			if inBracket {
				return nil, fmt.Errorf("nested '[' in segment")
			}
			inBracket = true
			sb.WriteRune(r)
		case r == ']':
			if !inBracket {
				return nil, fmt.Errorf("unmatched ']'")
			}
			inBracket = false
			sb.WriteRune(r)
		case r == '.' && !inBracket:
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	if inBracket {
		return nil, fmt.Errorf("unclosed '['")
	}
	parts = append(parts, sb.String())

	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty segment at position %d", i)
		}
	}
	return parts, nil
}

// compileSegment parses one dot-separated pattern segment.
func compileSegment(part string) (segment, error) {
	name := part
	bracket := ""
	hasBracket := false

	if open := strings.IndexByte(part, '['); open >= 0 {
		if !strings.HasSuffix(part, "]") {
			return segment{}, fmt.Errorf("segment %q: index bracket must end the segment", part)
		}
		name = part[:open]
		bracket = part[open+1 : len(part)-1]
		hasBracket = true
	}

	seg := segment{index: idxNone}
	switch name {
	case "**":
		if hasBracket {
			return segment{}, fmt.Errorf("segment %q: '**' cannot carry an index", part)
		}
		seg.kind = segDoubleStar
		return seg, nil
	case "*":
		seg.kind = segStar
	case "":
		return segment{}, fmt.Errorf("segment %q: missing name before index", part)
	default:
		if strings.ContainsAny(name, "*") {
			return segment{}, fmt.Errorf("segment %q: partial wildcards are not supported", part)
		}
		seg.kind = segLiteral
		seg.name = name
	}

	if hasBracket {
		idx, low, high, err := compileIndex(bracket)
		if err != nil {
			return segment{}, fmt.Errorf("segment %q: %v", part, err)
		}
		seg.index, seg.low, seg.high = idx, low, high
	}
	return seg, nil
}

// compileIndex parses the inside of an index bracket: *, n, or a..b.
func compileIndex(body string) (indexKind, int, int, error) {
	if body == "" {
		return idxNone, 0, 0, fmt.Errorf("empty index bracket")
	}
	if body == "*" {
		return idxAny, 0, 0, nil
	}

	if dots := strings.Index(body, ".."); dots >= 0 {
		low, err := strconv.Atoi(body[:dots])
		if err != nil {
			return idxNone, 0, 0, fmt.Errorf("bad range start %q", body[:dots])
		}
		high, err := strconv.Atoi(body[dots+2:])
		if err != nil {
			return idxNone, 0, 0, fmt.Errorf("bad range end %q", body[dots+2:])
		}
		if low < 0 || high < 0 {
			return idxNone, 0, 0, fmt.Errorf("negative range bound in %q", body)
		}
		if low > high {
			return idxNone, 0, 0, fmt.Errorf("reversed range %q", body)
		}
		return idxRange, low, high, nil
	}

	n, err := strconv.Atoi(body)
	if err != nil || n < 0 {
		return idxNone, 0, 0, fmt.Errorf("bad index %q", body)
	}
	return idxExact, n, n, nil
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// Matches reports whether the pattern matches the given module path with the
// parameter name appended as the final segment. This is the form assignments
// are matched in: the pattern covers modulePath ++ parameterName.
func (p *Pattern) Matches(path modpath.Path, param string) bool {
	combined := make([]modpath.Segment, 0, len(path.Segments)+1)
	combined = append(combined, path.Segments...)
	combined = append(combined, modpath.Segment{Name: param, Index: modpath.NoIndex})
	return p.MatchSegments(combined)
}

// MatchSegments reports whether the pattern matches the given segment
// sequence in full.
func (p *Pattern) MatchSegments(segs []modpath.Segment) bool {
	return matchFrom(p.segments, segs)
}

// matchFrom matches pattern segments against path segments recursively.
// A ** matcher tries every possible consumption length, so it matches zero
// or more consecutive segments at its position.
func matchFrom(pat []segment, path []modpath.Segment) bool {
	if len(pat) == 0 {
		return len(path) == 0
	}

	if pat[0].kind == segDoubleStar {
		for k := 0; k <= len(path); k++ {
			if matchFrom(pat[1:], path[k:]) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}
	if !pat[0].matchOne(path[0]) {
		return false
	}
	return matchFrom(pat[1:], path[1:])
}
