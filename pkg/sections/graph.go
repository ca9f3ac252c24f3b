// Package sections builds the inheritance structure among configuration
// sections and linearizes every extends chain into the precedence order the
// resolver walks: the section itself first, then its parents recursively in
// declared order, duplicates removed keeping the first occurrence, the
// General base section always last. Cycles are detected during
// linearization and fail the load.
package sections

import (
	"fmt"
	"strings"

	"vanet-hq/saturn/pkg/scl/ast"
)

// CycleError reports an inheritance cycle among sections.
type CycleError struct {
	Cycle []string // The sections forming the cycle, first repeated at the end
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("section inheritance cycle: %s", strings.Join(e.Cycle, " -> "))
}

// UnknownSectionError reports an extends target that is not defined.
type UnknownSectionError struct {
	Section string // The section whose extends list is broken
	Target  string // The missing parent
}

// Error implements the error interface.
func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("section [%s] extends unknown section [%s]", e.Section, e.Target)
}

// Graph holds the linearized inheritance chains of a parsed document.
// It is immutable after Build and safe for concurrent use.
type Graph struct {
	doc    *ast.Document
	chains map[string][]string
}

// Build computes the ancestor chain of every section in the document.
// It fails fast with a CycleError on circular extends declarations and an
// UnknownSectionError on extends targets that do not exist.
func Build(doc *ast.Document) (*Graph, error) {
	g := &Graph{
		doc:    doc,
		chains: make(map[string][]string, len(doc.Sections)),
	}

	for _, section := range doc.Sections {
		if _, done := g.chains[section.Name]; done {
			continue
		}
		visiting := make(map[string]bool)
		if _, err := g.linearize(section.Name, visiting, nil); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// linearize computes one section's chain, memoizing into g.chains.
// The stack carries the current descent path for cycle reporting.
func (g *Graph) linearize(name string, visiting map[string]bool, stack []string) ([]string, error) {
	if chain, done := g.chains[name]; done {
		return chain, nil
	}

	if visiting[name] {
		cycle := append(append([]string{}, stack...), name)
		// Trim the prefix before the cycle entry point
		for i, s := range cycle {
			if s == name {
				cycle = cycle[i:]
				break
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}

	visiting[name] = true
	stack = append(stack, name)

	section := g.doc.Section(name)
	if section == nil {
		// Parents are validated before descent; only a caller-supplied
		// unknown name reaches here.
		return nil, &UnknownSectionError{Section: name, Target: name}
	}

	chain := []string{name}
	seen := map[string]bool{name: true}

	for _, parent := range section.Extends {
		// The base section is pinned to the end of every chain below,
		// wherever it appears in an extends list.
		if parent == ast.GeneralSection {
			continue
		}
		if g.doc.Section(parent) == nil {
			return nil, &UnknownSectionError{Section: name, Target: parent}
		}

		sub, err := g.linearize(parent, visiting, stack)
		if err != nil {
			return nil, err
		}
		for _, ancestor := range sub {
			if !seen[ancestor] {
				seen[ancestor] = true
				chain = append(chain, ancestor)
			}
		}
	}

	visiting[name] = false

	// Every chain terminates at General when it exists, except General's own.
	if name != ast.GeneralSection && !seen[ast.GeneralSection] && g.doc.HasSection(ast.GeneralSection) {
		chain = append(chain, ast.GeneralSection)
	}

	// Memoized chains must not retain the pinned-General exclusion applied
	// to parents: strip a non-terminal General inherited from a parent.
	chain = pinGeneralLast(chain)

	g.chains[name] = chain
	return chain, nil
}

// pinGeneralLast moves the base section to the end of the chain if a parent
// chain introduced it earlier.
func pinGeneralLast(chain []string) []string {
	for i, name := range chain {
		if name == ast.GeneralSection && i != len(chain)-1 {
			out := make([]string, 0, len(chain))
			out = append(out, chain[:i]...)
			out = append(out, chain[i+1:]...)
			out = append(out, ast.GeneralSection)
			return out
		}
	}
	return chain
}

// Chain returns the linearized ancestor chain for a section, most-derived
// first. The second return is false for unknown sections.
func (g *Graph) Chain(name string) ([]string, bool) {
	chain, ok := g.chains[name]
	return chain, ok
}

// Section returns the underlying parsed section, or nil.
func (g *Graph) Section(name string) *ast.Section {
	return g.doc.Section(name)
}

// Names returns the section names in declaration order.
func (g *Graph) Names() []string {
	return g.doc.SectionNames()
}

// Has returns true if the named section exists.
func (g *Graph) Has(name string) bool {
	return g.doc.HasSection(name)
}
