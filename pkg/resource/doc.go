// Package resource loads the external documents scenario values
// reference through xmldoc(...) and csvdoc(...) markers.
//
// Documents load lazily: parsing an assignment never touches the
// filesystem, only the first Load of a reference does. The cache keys
// on the normalized path, so every reference to the same file shares
// one immutable parsed instance. A missing or malformed document is a
// LoadError and is never retried; referenced documents are static
// configuration data, not transient resources.
package resource
