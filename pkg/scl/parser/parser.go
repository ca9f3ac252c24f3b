package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"vanet-hq/saturn/pkg/scl/ast"
	sclErrors "vanet-hq/saturn/pkg/scl/errors"
)

// Parser parses SCL scenario files into syntax trees.
// It handles line scanning, comment stripping, section headers, and the
// assignment/directive split; pattern compilation and inheritance analysis
// happen in later stages.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
	strictMode  bool  // Strict mode: tolerated oddities become errors
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
		strictMode:  false,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithStrictMode enables strict parsing: assignments before the first
// section header and duplicate global directives become errors instead of
// being tolerated.
func (p *Parser) WithStrictMode(strict bool) *Parser {
	p.strictMode = strict
	return p
}

// Parse parses a scenario file at the given path and returns the document.
// It returns an error if the file cannot be read or contains syntax errors;
// all syntax errors found in one pass are accumulated and reported together.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &sclErrors.Error{
			Type:    sclErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{
				File: path,
			},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &sclErrors.Error{
			Type:    sclErrors.ErrorTypeIO,
			Message: fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{
				File: path,
			},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &sclErrors.Error{
			Type:    sclErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{
				File: path,
			},
		}
	}

	doc, errList := p.parse(data, path)
	if errList.HasErrors() {
		// Enrich errors with source context
		for i, e := range errList.Errors {
			errList.Errors[i] = sclErrors.AddContextToError(e)
		}
		return nil, errList
	}

	return doc, nil
}

// ParseBytes parses scenario text from a byte slice.
// This is useful for testing or parsing configurations from memory.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &sclErrors.Error{
			Type:    sclErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{
				File: sourcePath,
			},
		}
	}

	doc, errList := p.parse(data, sourcePath)
	if errList.HasErrors() {
		// Context extraction is a no-op for in-memory data, but safe to call
		for i, e := range errList.Errors {
			errList.Errors[i] = sclErrors.AddContextToError(e)
		}
		return nil, errList
	}

	return doc, nil
}

var sectionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// parse runs the line-oriented grammar over the input.
func (p *Parser) parse(data []byte, source string) (*ast.Document, *sclErrors.ErrorList) {
	doc := &ast.Document{Source: source}
	errs := sclErrors.NewErrorList()

	sections := make(map[string]*ast.Section)
	var current *ast.Section
	generalImplicit := false
	order := 0

	addSection := func(name string, loc ast.Location) *ast.Section {
		s := &ast.Section{Name: name, Location: loc}
		doc.Sections = append(doc.Sections, s)
		sections[name] = s
		return s
	}

	for _, ll := range scanLines(data) {
		text := stripComment(ll.text)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		col := indentOf(text)
		loc := ast.Location{File: source, Line: ll.line, Column: col}

		if strings.HasPrefix(trimmed, "[") {
			name, ok := p.parseHeader(trimmed, loc, errs)
			if !ok {
				continue
			}

			if existing, found := sections[name]; found {
				if name == ast.GeneralSection && generalImplicit {
					// Pre-header assignments already opened General; the
					// explicit header adopts them.
					generalImplicit = false
					existing.Location = loc
				} else {
					errs.AddErrorWithSuggestion(
						sclErrors.ErrorTypeStructural,
						fmt.Sprintf("Duplicate section [%s]", name),
						loc,
						fmt.Sprintf("Section [%s] is already defined at line %d", name, existing.Location.Line),
					)
				}
				current = existing
				continue
			}

			current = addSection(name, loc)
			continue
		}

		eq := strings.IndexByte(text, '=')
		if eq < 0 {
			errs.AddErrorWithSuggestion(
				sclErrors.ErrorTypeSyntax,
				fmt.Sprintf("Expected 'key = value', got %q", trimmed),
				loc,
				"Every non-comment line must be a section header or an assignment",
			)
			continue
		}

		key := strings.TrimSpace(text[:eq])
		rawValue := strings.TrimSpace(text[eq+1:])

		if key == "" {
			errs.AddError(sclErrors.ErrorTypeSyntax, "Missing key before '='", loc)
			continue
		}
		if rawValue == "" {
			errs.AddError(sclErrors.ErrorTypeSyntax,
				fmt.Sprintf("Missing value after '=' for key %q", key),
				ast.Location{File: source, Line: ll.line, Column: eq + 2})
			continue
		}
		if strings.ContainsAny(key, " \t") {
			errs.AddErrorWithSuggestion(
				sclErrors.ErrorTypeSyntax,
				fmt.Sprintf("Key %q contains whitespace", key),
				loc,
				"Pattern keys are dot-separated with no spaces",
			)
			continue
		}

		if current == nil {
			current = addSection(ast.GeneralSection, ast.Location{File: source, Line: ll.line, Column: 1})
			generalImplicit = true
			if p.strictMode {
				errs.AddErrorWithSuggestion(
					sclErrors.ErrorTypeStructural,
					"Assignment before the first section header",
					loc,
					"Start the file with [General]",
				)
			}
		}

		if key == "extends" {
			p.parseExtends(current, rawValue, loc, errs)
			continue
		}

		if strings.ContainsRune(key, '.') {
			current.Assignments = append(current.Assignments, &ast.Assignment{
				Key:         key,
				RawValue:    rawValue,
				SourceOrder: order,
				Location:    loc,
			})
		} else {
			if p.strictMode && current.Option(key) != nil {
				errs.AddError(sclErrors.ErrorTypeStructural,
					fmt.Sprintf("Duplicate directive %q in section [%s]", key, current.Name), loc)
			}
			current.Options = append(current.Options, &ast.Option{
				Name:        key,
				RawValue:    rawValue,
				SourceOrder: order,
				Location:    loc,
			})
		}
		order++
	}

	return doc, errs
}

// parseHeader parses a [SectionName] or [Config SectionName] header line.
func (p *Parser) parseHeader(trimmed string, loc ast.Location, errs *sclErrors.ErrorList) (string, bool) {
	if !strings.HasSuffix(trimmed, "]") {
		errs.AddErrorWithSuggestion(
			sclErrors.ErrorTypeSyntax,
			fmt.Sprintf("Section header %q is not closed", trimmed),
			loc,
			"Close the header with ']': [Config Name]",
		)
		return "", false
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	inner = strings.TrimSpace(strings.TrimPrefix(inner, "Config "))

	if inner == "" {
		errs.AddError(sclErrors.ErrorTypeSyntax, "Empty section name", loc)
		return "", false
	}
	if !sectionNamePattern.MatchString(inner) {
		errs.AddError(sclErrors.ErrorTypeSyntax,
			fmt.Sprintf("Invalid section name %q", inner), loc)
		return "", false
	}

	return inner, true
}

// parseExtends records the parent list of the current section.
func (p *Parser) parseExtends(section *ast.Section, rawValue string, loc ast.Location, errs *sclErrors.ErrorList) {
	if section.IsBase() {
		errs.AddError(sclErrors.ErrorTypeStructural,
			"The General section cannot extend another section", loc)
		return
	}
	if section.Extends != nil {
		errs.AddError(sclErrors.ErrorTypeStructural,
			fmt.Sprintf("Duplicate extends in section [%s]", section.Name), loc)
		return
	}

	parts := strings.Split(rawValue, ",")
	parents := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			errs.AddError(sclErrors.ErrorTypeSyntax,
				fmt.Sprintf("Empty entry in extends list %q", rawValue), loc)
			continue
		}
		parents = append(parents, name)
	}

	section.Extends = parents
}
