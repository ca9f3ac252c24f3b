package rng

import (
	"fmt"
	"regexp"
	"strconv"

	"vanet-hq/saturn/pkg/modpath"
	"vanet-hq/saturn/pkg/pattern"
)

// DefaultStream is the shared stream modules fall back to when no
// directive maps them.
const DefaultStream = 0

// StreamRangeError reports a stream index outside [0, num-rngs).
type StreamRangeError struct {
	Stream  int
	NumRngs int
}

// Error implements the error interface.
func (e *StreamRangeError) Error() string {
	return fmt.Sprintf("rng stream %d out of range: num-rngs is %d", e.Stream, e.NumRngs)
}

// Directive maps modules matching a pattern to a physical stream for
// one local RNG index. The pattern covers modulePath ++ rng-<local>,
// the same form ordinary assignments match in.
type Directive struct {
	Pattern     *pattern.Pattern
	Local       int
	Stream      int
	SourceOrder int
}

// Mapper answers which physical RNG stream a module's local generator
// draws from. It is immutable after New and safe for concurrent use;
// for a fixed configuration the mapping is a pure function of the
// module path, which is what keeps per-module draw sequences
// reproducible across runs with the same seed.
type Mapper struct {
	numRngs int
	groups  [][]Directive
	seeds   map[int]int64
}

// New builds a mapper from per-section directive groups in chain
// precedence order (most-derived first). Every mapped stream and every
// seeded stream must lie in [0, numRngs). The mapper takes ownership of
// groups and seeds.
func New(numRngs int, groups [][]Directive, seeds map[int]int64) (*Mapper, error) {
	if numRngs < 1 {
		return nil, fmt.Errorf("num-rngs must be at least 1, got %d", numRngs)
	}
	for _, group := range groups {
		for _, d := range group {
			if d.Local < 0 {
				return nil, fmt.Errorf("negative local rng index %d", d.Local)
			}
			if d.Stream < 0 || d.Stream >= numRngs {
				return nil, &StreamRangeError{Stream: d.Stream, NumRngs: numRngs}
			}
		}
	}
	for stream := range seeds {
		if stream < 0 || stream >= numRngs {
			return nil, &StreamRangeError{Stream: stream, NumRngs: numRngs}
		}
	}
	return &Mapper{numRngs: numRngs, groups: groups, seeds: seeds}, nil
}

// StreamFor maps the module's local RNG 0, the one nearly all modules
// draw from.
func (m *Mapper) StreamFor(path modpath.Path) int {
	return m.StreamForLocal(path, 0)
}

// StreamForLocal maps the module's local RNG index to a physical
// stream. Selection mirrors parameter resolution: the first section
// group with any match decides, the most specific pattern wins there,
// and declaration order breaks exact ties in favor of the later
// directive. Unmapped modules get DefaultStream.
func (m *Mapper) StreamForLocal(path modpath.Path, local int) int {
	param := DirectiveName(local)
	for _, group := range m.groups {
		var best *Directive
		for i := range group {
			d := &group[i]
			if d.Local != local || !d.Pattern.Matches(path, param) {
				continue
			}
			if best == nil {
				best = d
				continue
			}
			cmp := pattern.Compare(d.Pattern, best.Pattern)
			if cmp > 0 || (cmp == 0 && d.SourceOrder > best.SourceOrder) {
				best = d
			}
		}
		if best != nil {
			return best.Stream
		}
	}
	return DefaultStream
}

// NumRngs reports the declared stream count.
func (m *Mapper) NumRngs() int {
	return m.numRngs
}

// Seed returns the configured seed for a stream.
func (m *Mapper) Seed(stream int) (int64, bool) {
	seed, ok := m.seeds[stream]
	return seed, ok
}

// Groups exposes the directive groups in chain precedence order. The
// returned slices are shared and must not be mutated.
func (m *Mapper) Groups() [][]Directive {
	return m.groups
}

var (
	directiveName = regexp.MustCompile(`^rng-([0-9]+)$`)
	seedDirective = regexp.MustCompile(`^seed-([0-9]+)-mt$`)
)

// ParseDirectiveName extracts the local index from an rng-<k> parameter
// name.
func ParseDirectiveName(name string) (int, bool) {
	mm := directiveName.FindStringSubmatch(name)
	if mm == nil {
		return 0, false
	}
	k, err := strconv.Atoi(mm[1])
	if err != nil {
		return 0, false
	}
	return k, true
}

// DirectiveName renders the rng-<k> parameter name for a local index.
func DirectiveName(local int) string {
	return "rng-" + strconv.Itoa(local)
}

// ParseSeedName extracts the stream index from a seed-<k>-mt directive
// name.
func ParseSeedName(name string) (int, bool) {
	mm := seedDirective.FindStringSubmatch(name)
	if mm == nil {
		return 0, false
	}
	k, err := strconv.Atoi(mm[1])
	if err != nil {
		return 0, false
	}
	return k, true
}

// SeedName renders the seed-<k>-mt directive name for a stream.
func SeedName(stream int) string {
	return "seed-" + strconv.Itoa(stream) + "-mt"
}
