package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vanet-hq/saturn/pkg/value"
)

// Default cap on referenced document size. Vehicle traces and obstacle
// maps run large, so this is generous compared to the scenario parser.
const defaultMaxFileSize = 64 * 1024 * 1024

// LoadError reports a referenced document that could not be read or
// parsed. It is fatal: static configuration data is never retried.
type LoadError struct {
	Path string // The normalized path
	Err  error  // The underlying cause
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load resource %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Cache loads referenced documents lazily and shares one immutable
// instance per normalized path. Safe for concurrent use; concurrent
// first loads of the same path may race but the first write wins and
// every caller receives the same instance afterwards.
type Cache struct {
	baseDir     string
	maxFileSize int64

	mu   sync.RWMutex
	docs map[string]*Document
}

// NewCache creates a cache resolving relative references against
// baseDir. An empty baseDir resolves against the working directory.
func NewCache(baseDir string) *Cache {
	return &Cache{
		baseDir:     baseDir,
		maxFileSize: defaultMaxFileSize,
		docs:        make(map[string]*Document),
	}
}

// WithMaxFileSize caps the size of documents the cache will read.
func (c *Cache) WithMaxFileSize(size int64) *Cache {
	c.maxFileSize = size
	return c
}

// Load returns the document behind a reference, reading and parsing it
// on first access. Repeated loads of the same normalized path return
// the identical instance.
func (c *Cache) Load(ref value.DocumentRef) (*Document, error) {
	doc, _, err := c.LoadInfo(ref)
	return doc, err
}

// LoadInfo is Load with an extra flag reporting whether the document was
// already cached, for callers that track hit rates.
func (c *Cache) LoadInfo(ref value.DocumentRef) (*Document, bool, error) {
	key := c.normalize(ref.Path)

	c.mu.RLock()
	doc, ok := c.docs[key]
	c.mu.RUnlock()
	if ok {
		return doc, true, nil
	}

	doc, err := c.read(key, ref.Format)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.docs[key]; ok {
		// Another loader won the race; share its instance.
		return existing, true, nil
	}
	c.docs[key] = doc
	return doc, false, nil
}

// Len reports how many documents are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *Cache) normalize(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(c.baseDir, path))
}

func (c *Cache) read(path string, format value.DocFormat) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if info.Size() > c.maxFileSize {
		return nil, &LoadError{
			Path: path,
			Err:  fmt.Errorf("document size %d exceeds maximum %d", info.Size(), c.maxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	doc := &Document{Path: path, Format: format, Size: info.Size()}
	switch format {
	case value.DocXML:
		root, err := parseXML(data)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		doc.XML = root
	case value.DocCSV:
		table, err := parseCSV(data)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		doc.CSV = table
	default:
		return nil, &LoadError{Path: path, Err: fmt.Errorf("unknown document format %q", format)}
	}
	return doc, nil
}

// Document is the immutable in-memory form of one referenced file.
// Exactly one of XML and CSV is set, per Format.
type Document struct {
	Path   string
	Format value.DocFormat
	Size   int64
	XML    *XMLElement
	CSV    *CSVTable
}
