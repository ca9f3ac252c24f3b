package validator

import (
	"fmt"
	"regexp"

	"vanet-hq/saturn/pkg/rng"
	"vanet-hq/saturn/pkg/scl/ast"
	sclErrors "vanet-hq/saturn/pkg/scl/errors"
)

// sectionNamePattern validates section names (e.g., "DenseUrban").
var sectionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// StructuralValidator validates the structural integrity of a document.
// It checks section naming, duplicate sections, extends placement, and
// misplaced reserved directives. The parser enforces most of this for
// parsed files; the validator re-checks so programmatically constructed
// documents get the same guarantees.
type StructuralValidator struct {
	errors *sclErrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: sclErrors.NewErrorList(),
	}
}

// Validate performs structural validation on a document.
// It returns an ErrorList containing all structural errors found.
func (v *StructuralValidator) Validate(doc *ast.Document) error {
	v.errors = sclErrors.NewErrorList()

	v.validateSections(doc)

	for _, section := range doc.Sections {
		v.validateAssignments(section)
	}

	return v.errors.ToError()
}

// validateSections validates section names, uniqueness, and extends
// placement.
func (v *StructuralValidator) validateSections(doc *ast.Document) {
	seen := make(map[string]*ast.Section)

	for _, section := range doc.Sections {
		if section.Name == "" {
			v.errors.AddError(
				sclErrors.ErrorTypeStructural,
				"Section has no name",
				section.Location,
			)
			continue
		}

		if !sectionNamePattern.MatchString(section.Name) {
			v.errors.AddErrorWithSuggestion(
				sclErrors.ErrorTypeStructural,
				fmt.Sprintf("Invalid section name %q", section.Name),
				section.Location,
				"Section names start with a letter and use letters, digits, '_' and '-'",
			)
		}

		if prev, dup := seen[section.Name]; dup {
			v.errors.AddErrorWithSuggestion(
				sclErrors.ErrorTypeStructural,
				fmt.Sprintf("Duplicate section [%s]", section.Name),
				section.Location,
				fmt.Sprintf("Section [%s] is already defined at line %d", section.Name, prev.Location.Line),
			)
		} else {
			seen[section.Name] = section
		}

		if section.IsBase() && len(section.Extends) > 0 {
			v.errors.AddError(
				sclErrors.ErrorTypeStructural,
				"The General section cannot extend another section",
				section.Location,
			)
		}
	}
}

// validateAssignments flags reserved global directives that appear as
// pattern-keyed assignments. num-rngs and stream seeds configure the
// whole simulation and carry no module scope, so a pattern key on them
// is always a mistake.
func (v *StructuralValidator) validateAssignments(section *ast.Section) {
	for _, a := range section.Assignments {
		leaf := keyLeaf(a.Key)

		if leaf == "num-rngs" {
			v.errors.AddErrorWithSuggestion(
				sclErrors.ErrorTypeStructural,
				fmt.Sprintf("num-rngs cannot be pattern-keyed (found %q)", a.Key),
				a.Location,
				"Declare it as a plain 'num-rngs = <n>' line",
			)
			continue
		}

		if _, isSeed := rng.ParseSeedName(leaf); isSeed {
			v.errors.AddErrorWithSuggestion(
				sclErrors.ErrorTypeStructural,
				fmt.Sprintf("Stream seed %q cannot be pattern-keyed (found %q)", leaf, a.Key),
				a.Location,
				fmt.Sprintf("Declare it as a plain '%s = <seed>' line", leaf),
			)
		}
	}
}

// keyLeaf returns the final dot-separated segment of an assignment key,
// ignoring dots inside index brackets so range forms like node[2..5]
// survive.
func keyLeaf(key string) string {
	depth := 0
	last := 0
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				last = i + 1
			}
		}
	}
	return key[last:]
}
