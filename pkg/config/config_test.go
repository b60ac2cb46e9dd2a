package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/testsupport"
)

func TestParseYAML(t *testing.T) {
	raw := []byte(`
budget: 12
concurrency: 2
opaqueRecords: true
naming:
  genericPrefixes: [Github]
subset:
  accessors: [get]
renderers: [form.json]
`)
	cfg, err := Parse(raw, ".yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Config{
		Budget:        12,
		Concurrency:   2,
		OpaqueRecords: true,
		Naming:        NamingConfig{GenericPrefixes: []string{"Github"}},
		Subset:        artifact.Subset{Accessors: []string{"get"}},
		Renderers:     []string{"form.json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got := len(cfg.ResolverOptions()); got != 1 {
		t.Fatalf("expected one resolver option, got %d", got)
	}
}

func TestParseJSONKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"concurrency": 4}`), ".json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Budget != param.DefaultBudget || cfg.Concurrency != 4 {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestParseSniffsUnknownExtension(t *testing.T) {
	cfg, err := Parse([]byte("budget: 7\n"), "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Budget != 7 {
		t.Fatalf("budget: got %d", cfg.Budget)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"zero budget":      `{"budget": 0}`,
		"negative workers": `{"concurrency": -1}`,
		"missing dir":      `{"templates": {"dir": "does/not/exist"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw), ".json"); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadAndGeneratorOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paramgen.yml")
	if err := os.WriteFile(path, []byte("budget: 5\ntemplates:\n  invoker: com.example.Run\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		t.Fatalf("generator options: %v", err)
	}
	if _, err := artifact.New(opts...); err != nil {
		t.Fatalf("new generator: %v", err)
	}
	if len(cfg.ParserOptions()) != 2 {
		t.Fatalf("expected two parser options")
	}
}

func TestGeneratorOptionsLocalizeLabels(t *testing.T) {
	cfg, err := Parse([]byte(`
locale: es
labels:
  es:
    labels.owner: Propietario
`), ".yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		t.Fatalf("generator options: %v", err)
	}
	gen, err := artifact.New(opts...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	bundle, err := gen.Generate(context.Background(), testsupport.MustDecodeModule(t, `
module: repos
operations:
  - name: listRepos
    params:
      - name: owner
        type: string
      - name: page
        type: int
`))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	elements := bundle.Artifacts[0].Form.Elements
	var got []string
	for _, element := range elements {
		got = append(got, element.Attribute.DisplayName)
	}
	if diff := cmp.Diff([]string{"Propietario", "Page"}, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}
