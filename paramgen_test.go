package paramgen_test

import (
	"context"
	"io/fs"
	"testing"

	paramgen "github.com/goliatone/go-paramgen"
	"github.com/goliatone/go-paramgen/pkg/renderers/connector"
	"github.com/goliatone/go-paramgen/pkg/testsupport"
)

const module = `
module: echo
operations:
  - name: ping
    params:
      - name: message
        type: string
  - name: stats
    params:
      - name: since
        type: int?
`

func TestGenerateFromDocumentWithSubset(t *testing.T) {
	doc := testsupport.InlineDocument(t, "echo.yaml", module)

	bundle, err := paramgen.GenerateFromDocument(context.Background(), doc,
		paramgen.WithSubset(paramgen.Subset{Operations: []string{"stats"}}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(bundle.Artifacts) != 1 || bundle.Artifacts[0].Name != "stats" {
		t.Fatalf("unexpected artifacts %#v", bundle.Artifacts)
	}
	if got := bundle.Artifacts[0].Form.Elements[0].Attribute.Required; got != "false" {
		t.Fatalf("nilable parameter should be optional, got required=%q", got)
	}
}

func TestLoaderAndParserConstructors(t *testing.T) {
	if paramgen.NewLoader() == nil || paramgen.NewParser() == nil {
		t.Fatalf("constructors returned nil")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(paramgen.EmbeddedTemplates(), connector.OperationTemplate); err != nil {
		t.Fatalf("operation template missing: %v", err)
	}
}
