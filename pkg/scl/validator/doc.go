// Package validator provides validation for SCL scenario documents.
//
// The validator performs three types of validation:
//
// 1. Structural Validation: Checks section naming, duplicate sections, and
// misplaced reserved directives
//
// 2. Semantic Validation: Validates extends targets, the inheritance
// structure, and global directive names
//
// 3. Value Validation: Validates assignment patterns, directive values, and
// RNG stream ranges
//
// # Basic Usage
//
// Validate a parsed document:
//
//	doc, err := parser.NewParser().Parse("scenario.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	validator := validator.NewValidator()
//	if err := validator.Validate(doc); err != nil {
//	    if errList, ok := err.(*errors.ErrorList); ok {
//	        for _, e := range errList.Errors {
//	            fmt.Println(e.Error())
//	        }
//	    }
//	    log.Fatal(err)
//	}
//
// Run specific validation passes:
//
//	validator := validator.NewValidator()
//
//	// Only structural validation
//	if err := validator.ValidateStructural(doc); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Only semantic validation
//	if err := validator.ValidateSemantic(doc); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Only pattern and value validation
//	if err := validator.ValidateValues(doc); err != nil {
//	    log.Fatal(err)
//	}
//
// # Validation Passes
//
// Structural Validation checks:
// - Section names (start with a letter; letters, digits, '_', '-')
// - Section uniqueness (no duplicate section names)
// - Extends placement (the General section extends nothing)
// - Reserved directive placement (num-rngs and seed-<k>-mt are never
//   pattern-keyed)
//
// Semantic Validation checks:
// - Extends targets (every parent section is defined)
// - Inheritance structure (no cycles)
// - Global directive names (every dotless key is a reserved directive or a
//   stream seed)
//
// Value Validation checks:
// - Pattern syntax (every assignment key compiles)
// - Directive value forms (booleans, integers, quantities with the right
//   dimension)
// - RNG stream ranges (rng-<k> mappings and seed-<k>-mt seeds stay below
//   the effective num-rngs of the declaring section's chain)
//
// Values containing ${...} variables without defaults are skipped by value
// checks; those bind per run and cannot be checked statically.
//
// # Directive Catalog
//
// The validator checks global directives against the reserved catalog:
//
//	network, description, sim-time-limit, num-rngs, repeat,
//	debug-on-errors, print-undisposed, cmdenv-express-mode,
//	record-eventlog, result-dir, output-scalar-file, output-vector-file,
//	seed-<k>-mt
//
// Lookup a directive:
//
//	info, ok := validator.LookupDirective("sim-time-limit")
//	if !ok {
//	    log.Fatal("Directive not found")
//	}
//	fmt.Println("Directive type:", info.Type)
//
// # Validation Order
//
// Validations run in sequence:
// 1. Structural validation (fail fast on malformed documents)
// 2. Semantic validation (only if structural passed)
// 3. Value validation (only if structural and semantic passed)
//
// This prevents cascading errors and provides clearer error messages.
package validator
