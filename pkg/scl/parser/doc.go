// Package parser implements the line-oriented SCL grammar.
//
// # Grammar
//
// A scenario file is a sequence of logical lines:
//   - [SectionName] or [Config SectionName] headers open a section;
//     assignments before the first header belong to the implicit General
//     section.
//   - key = value lines bind a value. Dotted keys are wildcard pattern
//     assignments whose final segment is the parameter name; dotless keys
//     are global directives; the reserved key "extends" lists the section's
//     parents.
//   - # starts a comment, whole-line or trailing; a # inside a double-quoted
//     string is literal.
//   - A trailing backslash continues the logical line onto the next physical
//     line.
//
// The parser accumulates every syntax error found in one pass into an
// ErrorList with file/line/column locations and source context rather than
// stopping at the first problem.
package parser
