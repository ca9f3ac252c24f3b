package campaign

import (
	"fmt"
	"math/rand"
)

// Seed bounds for drawn RNG seeds. The upper bound keeps seeds within
// four digits so they stay readable in file names and run tables.
const (
	SeedMin = 1
	SeedMax = 9998
)

// DrawSeeds draws n distinct seeds from [SeedMin, SeedMax] using a
// deterministic source, so the same master seed always yields the same
// run set.
func DrawSeeds(master int64, n int) ([]int64, error) {
	if n < 1 {
		return nil, fmt.Errorf("seed count must be positive, got %d", n)
	}
	if n > SeedMax-SeedMin+1 {
		return nil, fmt.Errorf("cannot draw %d distinct seeds from [%d, %d]", n, SeedMin, SeedMax)
	}

	rng := rand.New(rand.NewSource(master))
	seeds := make([]int64, 0, n)
	seen := make(map[int64]bool, n)
	for len(seeds) < n {
		s := rng.Int63n(SeedMax-SeedMin+1) + SeedMin
		if seen[s] {
			continue
		}
		seen[s] = true
		seeds = append(seeds, s)
	}
	return seeds, nil
}
