package ast

// GeneralSection is the name of the implicit base section. Every section's
// resolution chain terminates at it, and assignments that appear before any
// section header belong to it.
const GeneralSection = "General"

// Document is the parsed form of one scenario configuration file: an ordered
// list of sections, each holding ordered assignments and global options.
// Documents are immutable after parsing.
type Document struct {
	Source   string // Path the document was parsed from ("" for in-memory data)
	Sections []*Section
}

// Section is one named configuration variant. Extends lists parent sections
// in declared order; the resolution chain is computed from it by the section
// graph, not here.
type Section struct {
	Name        string
	Extends     []string
	Assignments []*Assignment
	Options     []*Option
	Location    Location
}

// Assignment is one pattern-keyed parameter binding: the key is a wildcard
// module-path pattern whose final segment is the parameter name. The raw
// value is kept textual; typing happens at resolution time.
type Assignment struct {
	Key         string
	RawValue    string
	SourceOrder int // File-global declaration index, used for last-wins tie-breaking
	Location    Location
}

// Option is a global directive: a key with no dots, bound to the section it
// appears in and resolved by plain name rather than pattern matching
// (e.g. sim-time-limit, num-rngs, seed-1-mt, network).
type Option struct {
	Name        string
	RawValue    string
	SourceOrder int
	Location    Location
}

// Section returns the section with the given name, or nil.
func (d *Document) Section(name string) *Section {
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SectionNames returns the section names in declaration order.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// HasSection returns true if a section with the given name exists.
func (d *Document) HasSection(name string) bool {
	return d.Section(name) != nil
}

// Option returns the named global directive of the section, or nil.
func (s *Section) Option(name string) *Option {
	for _, o := range s.Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// IsBase returns true for the implicit base section.
func (s *Section) IsBase() bool {
	return s.Name == GeneralSection
}
