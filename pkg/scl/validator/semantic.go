package validator

import (
	"errors"
	"fmt"
	"strings"

	"vanet-hq/saturn/pkg/scl/ast"
	sclErrors "vanet-hq/saturn/pkg/scl/errors"
	"vanet-hq/saturn/pkg/sections"
)

// SemanticValidator validates cross-references in a document: extends
// targets, the inheritance structure, and global directive names.
type SemanticValidator struct {
	doc    *ast.Document
	errors *sclErrors.ErrorList
}

// NewSemanticValidator creates a new semantic validator.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{
		errors: sclErrors.NewErrorList(),
	}
}

// Validate performs semantic validation on a document.
func (v *SemanticValidator) Validate(doc *ast.Document) error {
	v.doc = doc
	v.errors = sclErrors.NewErrorList()

	targetsOK := v.validateExtendsTargets()

	// Cycle detection walks the extends edges, so it only makes sense
	// once every target resolves.
	if targetsOK {
		v.validateInheritance()
	}

	v.validateDirectiveNames()

	return v.errors.ToError()
}

// validateExtendsTargets checks that every extends entry names a defined
// section. Unlike the section graph, which fails fast, this reports every
// broken reference.
func (v *SemanticValidator) validateExtendsTargets() bool {
	defined := v.doc.SectionNames()
	ok := true

	for _, section := range v.doc.Sections {
		for _, target := range section.Extends {
			if v.doc.HasSection(target) {
				continue
			}
			ok = false
			v.errors.AddErrorWithSuggestion(
				sclErrors.ErrorTypeSemantic,
				fmt.Sprintf("Section [%s] extends unknown section [%s]", section.Name, target),
				section.Location,
				sclErrors.SuggestSectionName(target, defined),
			)
		}
	}

	return ok
}

// validateInheritance linearizes every section chain and reports
// inheritance cycles.
func (v *SemanticValidator) validateInheritance() {
	_, err := sections.Build(v.doc)
	if err == nil {
		return
	}

	var cycle *sections.CycleError
	if errors.As(err, &cycle) {
		loc := ast.Location{}
		if len(cycle.Cycle) > 0 {
			if s := v.doc.Section(cycle.Cycle[0]); s != nil {
				loc = s.Location
			}
		}
		v.errors.AddErrorWithSuggestion(
			sclErrors.ErrorTypeSemantic,
			fmt.Sprintf("Inheritance cycle: %s", strings.Join(cycle.Cycle, " -> ")),
			loc,
			"Remove one of the extends declarations in the cycle",
		)
		return
	}

	v.errors.AddError(sclErrors.ErrorTypeSemantic, err.Error(), ast.Location{})
}

// validateDirectiveNames checks every global directive against the
// reserved catalog. Misspelled directives would otherwise be silently
// inert, which is the most expensive kind of configuration mistake.
func (v *SemanticValidator) validateDirectiveNames() {
	known := DirectiveNames()

	for _, section := range v.doc.Sections {
		for _, o := range section.Options {
			if _, ok := LookupDirective(o.Name); ok {
				continue
			}
			v.errors.AddErrorWithSuggestion(
				sclErrors.ErrorTypeSemantic,
				fmt.Sprintf("Unknown global directive %q in section [%s]", o.Name, section.Name),
				o.Location,
				sclErrors.SuggestDirective(o.Name, known),
			)
		}
	}
}
