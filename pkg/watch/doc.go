// Package watch monitors scenario files and the documents they
// reference for changes, driving re-lints in watch mode.
//
// Events pass through an extension filter and a debouncer before the
// reload callback fires, so an editor writing a file in several steps
// (truncate, write, rename) triggers one reload, not a storm. A
// Watcher owns one path; lint --watch runs one Watcher per distinct
// parent directory of its targets.
package watch
