package validator

import (
	"vanet-hq/saturn/pkg/scl/ast"
	sclErrors "vanet-hq/saturn/pkg/scl/errors"
)

// Validator is the main validator that orchestrates all validation passes.
// It runs structural, semantic, and value validation in sequence.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
	values     *ValueValidator
}

// NewValidator creates a new validator with all validation passes.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		semantic:   NewSemanticValidator(),
		values:     NewValueValidator(),
	}
}

// Validate runs all validation passes on a document.
// It accumulates errors from all passes and returns them together.
func (v *Validator) Validate(doc *ast.Document) error {
	errors := sclErrors.NewErrorList()

	// Run structural validation
	if err := v.structural.Validate(doc); err != nil {
		if errList, ok := err.(*sclErrors.ErrorList); ok {
			errors.Errors = append(errors.Errors, errList.Errors...)
		}
	}

	// Run semantic validation (only if structural validation passed)
	// This prevents cascading errors
	if !errors.HasErrorType(sclErrors.ErrorTypeStructural) {
		if err := v.semantic.Validate(doc); err != nil {
			if errList, ok := err.(*sclErrors.ErrorList); ok {
				errors.Errors = append(errors.Errors, errList.Errors...)
			}
		}
	}

	// Run value validation (only on a sound inheritance structure, since
	// stream range checks walk the section graph)
	if !errors.HasErrorType(sclErrors.ErrorTypeStructural) &&
		!errors.HasErrorType(sclErrors.ErrorTypeSemantic) {
		if err := v.values.Validate(doc); err != nil {
			if errList, ok := err.(*sclErrors.ErrorList); ok {
				errors.Errors = append(errors.Errors, errList.Errors...)
			}
		}
	}

	return errors.ToError()
}

// ValidateStructural runs only structural validation.
func (v *Validator) ValidateStructural(doc *ast.Document) error {
	return v.structural.Validate(doc)
}

// ValidateSemantic runs only semantic validation.
func (v *Validator) ValidateSemantic(doc *ast.Document) error {
	return v.semantic.Validate(doc)
}

// ValidateValues runs only pattern and directive value validation.
func (v *Validator) ValidateValues(doc *ast.Document) error {
	return v.values.Validate(doc)
}
