package resource

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"vanet-hq/saturn/pkg/value"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const vehiclesXML = `<?xml version="1.0"?>
<services>
  <service type="cam">
    <penetration rate="0.2500"/>
  </service>
  <service type="denm">
    <penetration rate="1.0000"/>
  </service>
</services>
`

func TestLoadXML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "services.xml", vehiclesXML)

	cache := NewCache(dir)
	doc, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "services.xml"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	root := doc.XML
	if root == nil || root.Name != "services" {
		t.Fatalf("root = %+v, want services element", root)
	}
	services := root.FindAll("service")
	if len(services) != 2 {
		t.Fatalf("got %d service elements, want 2", len(services))
	}
	if typ, ok := services[0].Attr("type"); !ok || typ != "cam" {
		t.Errorf("first service type = %q", typ)
	}
	pen := services[0].Find("penetration")
	if pen == nil {
		t.Fatal("penetration element missing")
	}
	if rate, _ := pen.Attr("rate"); rate != "0.2500" {
		t.Errorf("rate = %q, want 0.2500", rate)
	}
	if services[0].Find("nothing") != nil {
		t.Error("Find for absent child returned an element")
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "trace.csv", "t,x,y\n0,1.5,2.5\n1,1.6,2.4\n")

	cache := NewCache(dir)
	doc, err := cache.Load(value.DocumentRef{Format: value.DocCSV, Path: "trace.csv"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if doc.CSV.Len() != 3 {
		t.Fatalf("got %d records, want 3", doc.CSV.Len())
	}
	if got := doc.CSV.Row(1)[1]; got != "1.5" {
		t.Errorf("row 1 col 1 = %q, want 1.5", got)
	}
}

func TestLoadSharesOneInstance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<root/>")

	cache := NewCache(dir)
	first, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "a.xml"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "a.xml"})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("repeated loads returned distinct instances")
	}

	// A different spelling of the same path hits the same entry.
	third, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "./sub/../a.xml"})
	if err != nil {
		t.Fatal(err)
	}
	if third != first {
		t.Error("normalized path missed the cache")
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d documents, want 1", cache.Len())
	}
}

func TestLoadConcurrent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<root/>")

	cache := NewCache(dir)
	docs := make([]*Document, 16)
	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "a.xml"})
			if err != nil {
				t.Error(err)
				return
			}
			docs[i] = doc
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(docs); i++ {
		if docs[i] != docs[0] {
			t.Fatalf("load %d returned a distinct instance", i)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	cache := NewCache(t.TempDir())
	_, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "absent.xml"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error is %T, want *LoadError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error does not unwrap to fs.ErrNotExist: %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.xml", "<root><open></root>")
	writeFile(t, dir, "bad.csv", "a,\"unterminated\n")

	cache := NewCache(dir)
	var loadErr *LoadError

	_, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "bad.xml"})
	if !errors.As(err, &loadErr) {
		t.Errorf("malformed XML error is %T, want *LoadError", err)
	}

	_, err = cache.Load(value.DocumentRef{Format: value.DocCSV, Path: "bad.csv"})
	if !errors.As(err, &loadErr) {
		t.Errorf("malformed CSV error is %T, want *LoadError", err)
	}
}

func TestLoadSizeCap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.xml", "<root>0123456789</root>")

	cache := NewCache(dir).WithMaxFileSize(8)
	_, err := cache.Load(value.DocumentRef{Format: value.DocXML, Path: "big.xml"})
	if err == nil {
		t.Fatal("oversized document did not fail")
	}
}
