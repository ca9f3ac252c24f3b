package pattern

// Per-segment specificity weights. A pattern's score is the sum over its
// segments; higher means more targeted. The ordering these produce: a literal
// name beats a single-level wildcard beats a multi-level wildcard, and an
// explicit index beats a range beats a wildcard index.
const (
	// WeightLiteral scores an exact submodule name.
	WeightLiteral = 40

	// WeightStar scores a single-level wildcard (*).
	WeightStar = 10

	// WeightDoubleStar scores a multi-level wildcard (**).
	WeightDoubleStar = 1

	// BonusExactIndex is added for an explicit [n] index.
	BonusExactIndex = 8

	// BonusAnyIndex is added for a [*] wildcard index.
	BonusAnyIndex = 1
)

// rangeBonus scores an [a..b] index: narrower ranges rank higher, bounded so
// any range still beats a wildcard index and never reaches an exact index.
func rangeBonus(low, high int) int {
	bonus := 7 - (high - low)
	if bonus < 2 {
		return 2
	}
	return bonus
}

// computeSpecificity sums the per-segment weights for a compiled pattern.
func computeSpecificity(segments []segment) int {
	score := 0
	for _, seg := range segments {
		switch seg.kind {
		case segLiteral:
			score += WeightLiteral
		case segStar:
			score += WeightStar
		case segDoubleStar:
			score += WeightDoubleStar
		}

		switch seg.index {
		case idxExact:
			score += BonusExactIndex
		case idxRange:
			score += rangeBonus(seg.low, seg.high)
		case idxAny:
			score += BonusAnyIndex
		}
	}
	return score
}

// literalPrefixLen counts the leading segments that are exact names. It is
// the first tie-break between patterns of equal score: a longer literal
// prefix is considered more targeted.
func literalPrefixLen(segments []segment) int {
	n := 0
	for _, seg := range segments {
		if seg.kind != segLiteral {
			break
		}
		n++
	}
	return n
}

// Specificity returns the precomputed specificity score.
func (p *Pattern) Specificity() int {
	return p.specificity
}

// LiteralPrefix returns the number of leading literal segments.
func (p *Pattern) LiteralPrefix() int {
	return p.literalPrefix
}

// Compare orders two patterns by specificity: it returns a positive value if
// a is more specific than b, negative if less, and zero on a full tie. Ties
// on score fall back to the literal prefix length. Callers break remaining
// ties by declaration order (later wins).
func Compare(a, b *Pattern) int {
	if a.specificity != b.specificity {
		return a.specificity - b.specificity
	}
	return a.literalPrefix - b.literalPrefix
}
