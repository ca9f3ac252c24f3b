// Package ast defines the abstract syntax tree for SCL scenario
// configuration files.
//
// A parsed document is an ordered list of sections; each section carries the
// pattern-keyed parameter assignments and the global directives declared in
// it, every node annotated with its source location. The tree is purely
// syntactic: pattern compilation, inheritance linearization, and value typing
// are performed by the pattern, sections, and value packages on top of it.
package ast
