package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

const sample = "module: demo\noperations: []\n"

func TestLoaderReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(typedesc.NewLoaderOptions()).Load(context.Background(), typedesc.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != sample {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoaderReadsFS(t *testing.T) {
	files := fstest.MapFS{"specs/module.yaml": {Data: []byte(sample)}}
	l := New(typedesc.NewLoaderOptions(typedesc.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), typedesc.SourceFromFS("specs/module.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "specs/module.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	if _, err := New(typedesc.NewLoaderOptions()).Load(context.Background(), typedesc.SourceFromFS("specs/module.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sample))
	}))
	defer server.Close()

	disabled := New(typedesc.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), typedesc.SourceFromURL(server.URL+"/module.yaml")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	enabled := New(typedesc.NewLoaderOptions(typedesc.WithHTTPClient(server.Client())))
	doc, err := enabled.Load(context.Background(), typedesc.SourceFromURL(server.URL+"/module.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != sample {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	_, err = enabled.Load(context.Background(), typedesc.SourceFromURL(server.URL+"/missing"))
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(typedesc.NewLoaderOptions()).Load(ctx, typedesc.SourceFromFile("does-not-matter.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
