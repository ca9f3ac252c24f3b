// Package errors provides rich error types for SCL parsing and validation.
//
// # Error Types
//
// Errors are categorized by stage:
//   - syntax: malformed lines, headers, or brackets
//   - structural: duplicate sections, misplaced directives
//   - semantic: unknown extends targets, inheritance cycles
//   - validation: bad patterns, out-of-range stream indices
//   - io: file access failures
//
// # Rich Context
//
// Every error carries the source location it was raised at and, when the
// file is readable, a snippet of the surrounding lines with the offending
// line marked. Recognizable mistakes additionally carry a suggestion
// produced by edit-distance lookup against the known names.
//
// # Accumulation
//
// ErrorList collects every problem found in one pass instead of stopping at
// the first, so a lint run reports all of a file's defects at once.
package errors
