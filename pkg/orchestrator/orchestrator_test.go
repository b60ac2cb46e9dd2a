package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/orchestrator"
	"github.com/goliatone/go-paramgen/pkg/testsupport"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

const descriptorDocument = `
module: store
types:
  Item:
    fields:
      - name: sku
        type: string
      - name: qty
        type: int
operations:
  - name: addItem
    accessor: post
    path: items
    params:
      - name: item
        type: Item
  - name: legacy
    params:
      - name: raw
        type: json
`

const openapiDocument = `openapi: 3.0.3
info:
  title: Store
  version: 1.0.0
paths:
  /items/{sku}:
    get:
      parameters:
        - name: sku
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
`

func names(bundle artifact.Bundle) []string {
	var out []string
	for _, a := range bundle.Artifacts {
		out = append(out, a.Name)
	}
	return out
}

func TestGenerateFromDescriptorFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	if err := os.WriteFile(path, []byte(descriptorDocument), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	gen := orchestrator.New()
	bundle, err := gen.Generate(context.Background(), orchestrator.Request{
		Source: typedesc.SourceFromFile(path),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if bundle.Module != "store" {
		t.Fatalf("module: got %q", bundle.Module)
	}
	if diff := cmp.Diff([]string{"postItems", "legacy"}, names(bundle)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	add, _ := bundle.Artifact("postItems")
	if _, ok := add.Wire.Lookup("item_param1"); !ok {
		t.Fatalf("expected flattened record field, got %s", add.Wire.String())
	}
}

func TestGenerateDetectsOpenAPI(t *testing.T) {
	doc := testsupport.InlineDocument(t, "store.yaml", openapiDocument)

	bundle, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"getItemsBySku"}, names(bundle)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHonoursForcedFormat(t *testing.T) {
	doc := testsupport.InlineDocument(t, "store.yaml", descriptorDocument)

	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Document: &doc,
		Format:   orchestrator.FormatOpenAPI,
	})
	if err == nil {
		t.Fatalf("expected OpenAPI parsing of a descriptor document to fail")
	}
}

func TestGenerateAppliesPresetTransformer(t *testing.T) {
	files := fstest.MapFS{
		"preset.yaml": {Data: []byte("module: shop\noperations:\n  addItem:\n    id: createItem\n  legacy:\n    exclude: true\n")},
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(files, "preset.yaml")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	module := testsupport.MustDecodeModule(t, descriptorDocument)

	bundle, err := orchestrator.New(orchestrator.WithTransformers(preset)).Generate(context.Background(), orchestrator.Request{Module: &module})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if bundle.Module != "shop" {
		t.Fatalf("module rename not applied: %q", bundle.Module)
	}
	if diff := cmp.Diff([]string{"createItem"}, names(bundle)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if len(module.Operations) != 2 {
		t.Fatalf("transformer must not mutate the caller's operations")
	}
}

func TestPresetTransformerReportsUnknownOperations(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"operations": {"missing": {"id": "x"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	module := testsupport.MustDecodeModule(t, descriptorDocument)
	err = preset.Transform(context.Background(), &module)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected unknown operation error, got %v", err)
	}
}

func TestGenerateRequiresInput(t *testing.T) {
	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{})
	if err == nil {
		t.Fatalf("expected missing source error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orchestrator.New().Generate(ctx, orchestrator.Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGeneratorOptionsErrorsSurface(t *testing.T) {
	module := testsupport.MustDecodeModule(t, descriptorDocument)
	gen := orchestrator.New(orchestrator.WithGeneratorOptions(artifact.WithRenderers("missing")))
	if _, err := gen.Generate(context.Background(), orchestrator.Request{Module: &module}); err == nil {
		t.Fatalf("expected generator initialisation error")
	}
}
