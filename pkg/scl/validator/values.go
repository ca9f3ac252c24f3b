package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vanet-hq/saturn/pkg/pattern"
	"vanet-hq/saturn/pkg/rng"
	"vanet-hq/saturn/pkg/scl/ast"
	sclErrors "vanet-hq/saturn/pkg/scl/errors"
	"vanet-hq/saturn/pkg/sections"
	"vanet-hq/saturn/pkg/value"
)

// ValueValidator validates assignment patterns and the values of
// reserved directives: pattern syntax, directive value forms, and RNG
// stream ranges. Values containing variables without defaults are
// skipped; those bind per run and cannot be checked statically.
type ValueValidator struct {
	doc    *ast.Document
	errors *sclErrors.ErrorList
}

// NewValueValidator creates a new value validator.
func NewValueValidator() *ValueValidator {
	return &ValueValidator{
		errors: sclErrors.NewErrorList(),
	}
}

// Validate performs pattern and value validation on a document.
func (v *ValueValidator) Validate(doc *ast.Document) error {
	v.doc = doc
	v.errors = sclErrors.NewErrorList()

	v.validatePatterns()
	v.validateDirectiveValues()
	v.validateStreamRanges()

	return v.errors.ToError()
}

// validatePatterns compiles every assignment key.
func (v *ValueValidator) validatePatterns() {
	for _, section := range v.doc.Sections {
		for _, a := range section.Assignments {
			if _, err := pattern.Compile(a.Key); err != nil {
				v.errors.AddError(
					sclErrors.ErrorTypeValidation,
					fmt.Sprintf("Invalid pattern %q: %v", a.Key, err),
					a.Location,
				)
			}
		}
	}
}

// validateDirectiveValues checks each reserved directive's value against
// its catalog entry. Every declaration is checked once, at its own
// location.
func (v *ValueValidator) validateDirectiveValues() {
	for _, section := range v.doc.Sections {
		for _, o := range section.Options {
			info, ok := LookupDirective(o.Name)
			if !ok {
				// The semantic pass reports unknown directives.
				continue
			}

			sub, ok := substituted(o.RawValue)
			if !ok {
				continue
			}

			switch info.Type {
			case DirectiveBool:
				if _, err := value.ParseAs(sub, value.KindBool, value.DimNone); err != nil {
					v.errors.AddError(
						sclErrors.ErrorTypeValidation,
						fmt.Sprintf("Expected true or false, got %q", sub),
						o.Location,
					)
				}

			case DirectiveInt:
				n, err := strconv.ParseInt(strings.TrimSpace(sub), 10, 64)
				if err != nil {
					msg := fmt.Sprintf("Expected an integer, got %q", sub)
					if _, isSeed := rng.ParseSeedName(o.Name); isSeed {
						msg = fmt.Sprintf("Expected an integer seed, got %q", sub)
					}
					v.errors.AddError(sclErrors.ErrorTypeValidation, msg, o.Location)
					continue
				}
				if info.Min > 0 && n < int64(info.Min) {
					v.errors.AddError(
						sclErrors.ErrorTypeValidation,
						fmt.Sprintf("%s must be at least %d, got %d", o.Name, info.Min, n),
						o.Location,
					)
				}

			case DirectiveQuantity:
				if _, err := value.ParseAs(sub, value.KindQuantity, info.Dim); err != nil {
					msg := fmt.Sprintf("Invalid %s value %q: %v", o.Name, sub, err)
					var unknown *value.UnknownUnitError
					if errors.As(err, &unknown) {
						v.errors.AddErrorWithSuggestion(
							sclErrors.ErrorTypeValidation, msg, o.Location,
							sclErrors.SuggestUnit(unknown.Unit, value.AllUnits()),
						)
					} else {
						v.errors.AddError(sclErrors.ErrorTypeValidation, msg, o.Location)
					}
				}
			}
		}
	}
}

// validateStreamRanges checks RNG mapping assignments and stream seeds
// against the effective num-rngs of the declaring section's chain, as
// if that section were activated.
func (v *ValueValidator) validateStreamRanges() {
	graph, err := sections.Build(v.doc)
	if err != nil {
		// The semantic pass reports inheritance problems; without a
		// graph there is no effective num-rngs to check against.
		return
	}

	for _, section := range v.doc.Sections {
		chain, ok := graph.Chain(section.Name)
		if !ok {
			continue
		}
		numRngs, known := effectiveNumRngs(graph, chain)

		for _, o := range section.Options {
			stream, isSeed := rng.ParseSeedName(o.Name)
			if !isSeed {
				continue
			}
			if known && stream >= numRngs {
				v.errors.AddErrorWithSuggestion(
					sclErrors.ErrorTypeValidation,
					fmt.Sprintf("%s targets stream %d but num-rngs is %d", o.Name, stream, numRngs),
					o.Location,
					fmt.Sprintf("declare num-rngs = %d or seed a stream below %d", stream+1, numRngs),
				)
			}
		}

		for _, a := range section.Assignments {
			if _, isRNG := rng.ParseDirectiveName(keyLeaf(a.Key)); !isRNG {
				continue
			}
			sub, ok := substituted(a.RawValue)
			if !ok {
				continue
			}
			stream, err := strconv.Atoi(strings.TrimSpace(sub))
			if err != nil {
				v.errors.AddError(
					sclErrors.ErrorTypeValidation,
					fmt.Sprintf("Expected an integer, got %q", sub),
					a.Location,
				)
				continue
			}
			if known && (stream < 0 || stream >= numRngs) {
				v.errors.AddErrorWithSuggestion(
					sclErrors.ErrorTypeValidation,
					fmt.Sprintf("RNG stream %d is out of range: num-rngs is %d", stream, numRngs),
					a.Location,
					fmt.Sprintf("declare num-rngs = %d or map to a stream below %d", stream+1, numRngs),
				)
			}
		}
	}
}

// effectiveNumRngs resolves num-rngs along a section chain the way the
// engine does: the first section that sets it wins, last occurrence
// within a section. The bool is false when the effective value cannot
// be determined statically, in which case range checks are skipped; the
// bad declaration itself is reported by the directive value check.
func effectiveNumRngs(graph *sections.Graph, chain []string) (int, bool) {
	for _, name := range chain {
		sec := graph.Section(name)
		if sec == nil {
			continue
		}
		var latest *ast.Option
		for _, o := range sec.Options {
			if o.Name == "num-rngs" && (latest == nil || o.SourceOrder > latest.SourceOrder) {
				latest = o
			}
		}
		if latest == nil {
			continue
		}
		sub, ok := substituted(latest.RawValue)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(sub))
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	}
	return 1, true
}

// substituted expands ${...} references using declared defaults only.
func substituted(raw string) (string, bool) {
	sub, err := value.Substitute(raw, nil, 0)
	if err != nil {
		return "", false
	}
	return sub, true
}
