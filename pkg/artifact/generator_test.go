package artifact_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/form"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/render"
	"github.com/goliatone/go-paramgen/pkg/renderers/connector"
	"github.com/goliatone/go-paramgen/pkg/renderers/formjson"
	"github.com/goliatone/go-paramgen/pkg/testsupport"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

const moduleDocument = `
module: github
doc: GitHub connector
types:
  Repo:
    fields:
      - name: name
        type: string
      - name: private
        type: boolean
        optional: true
operations:
  - name: init
    kind: init
    params:
      - name: config
        type: Repo?
  - name: getRepo
    accessor: get
    path: repos/[owner]
    doc: Fetch a repository
    params:
      - name: owner
        type: string
  - name: listRepos
    id: getReposByOwner
    params:
      - name: owner
        type: string
  - name: callback
    params:
      - name: handler
        type: function
  - name: createRepo
    params:
      - name: payload
        type: Repo
`

func generate(t *testing.T, options ...artifact.Option) artifact.Bundle {
	t.Helper()

	gen, err := artifact.New(options...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	bundle, err := gen.Generate(context.Background(), testsupport.MustDecodeModule(t, moduleDocument))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return bundle
}

func TestGenerateResolvesUniqueNamesInOrder(t *testing.T) {
	bundle := generate(t, artifact.WithConcurrency(2))

	var names []string
	for _, a := range bundle.Artifacts {
		names = append(names, a.Name)
	}
	want := []string{"repo", "getReposByOwner", "getReposByOwner2", "repo2"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if bundle.Module != "github" {
		t.Fatalf("module: got %q", bundle.Module)
	}
}

func TestGenerateReportsSkippedOperations(t *testing.T) {
	bundle := generate(t)

	if bundle.Report.Total != 5 || bundle.Report.Generated != 4 {
		t.Fatalf("counts: total=%d generated=%d", bundle.Report.Total, bundle.Report.Generated)
	}
	if len(bundle.Report.Skipped) != 1 {
		t.Fatalf("expected one skipped operation, got %#v", bundle.Report.Skipped)
	}
	skipped := bundle.Report.Skipped[0]
	if skipped.Operation != "callback" || skipped.Reason != param.ReasonUnsupportedType {
		t.Fatalf("unexpected skip entry %#v", skipped)
	}
	if _, ok := bundle.Artifact(skipped.Name); ok {
		t.Fatalf("skipped operation must not produce an artifact")
	}
}

func TestGenerateRendersWireFormAndTemplates(t *testing.T) {
	bundle := generate(t)

	get, ok := bundle.Artifact("getReposByOwner")
	if !ok {
		t.Fatalf("missing getReposByOwner artifact")
	}
	if get.Path != "/repos/{owner}" || get.Accessor != "get" {
		t.Fatalf("path/accessor: %q %q", get.Path, get.Accessor)
	}
	if got := get.Wire.String(); got != `param0=owner \`+"\n"+`paramType0=string` {
		t.Fatalf("wire: got %q", got)
	}
	if diff := cmp.Diff([]string{"owner"}, form.ValueNames(get.Form.Elements)); diff != "" {
		t.Fatalf("form names mismatch (-want +got):\n%s", diff)
	}

	xml, ok := get.Output(connector.OperationName)
	if !ok {
		t.Fatalf("missing %s output", connector.OperationName)
	}
	if !strings.Contains(xml.Content, `<property name="param0" value="owner"/>`) {
		t.Fatalf("operation xml missing wire property:\n%s", xml.Content)
	}
	if _, ok := get.Output(formjson.Name); !ok {
		t.Fatalf("missing %s output", formjson.Name)
	}

	if len(bundle.Outputs) != 1 || bundle.Outputs[0].Renderer != connector.ComponentName {
		t.Fatalf("expected component output, got %#v", bundle.Outputs)
	}
	if !strings.Contains(bundle.Outputs[0].Content, "<file>repo2.xml</file>") {
		t.Fatalf("component should list every artifact:\n%s", bundle.Outputs[0].Content)
	}
}

func TestGenerateUsesConfigModeForInit(t *testing.T) {
	bundle := generate(t, artifact.WithRenderers())

	init, ok := bundle.Artifact("repo")
	if !ok {
		t.Fatalf("missing init artifact")
	}
	if diff := cmp.Diff([]string{"enableConfig"}, form.SyntheticNames(init.Form.Elements)); diff != "" {
		t.Fatalf("synthetic names mismatch (-want +got):\n%s", diff)
	}
	if len(init.Outputs) != 0 {
		t.Fatalf("renderers disabled, got %d outputs", len(init.Outputs))
	}

	create, _ := bundle.Artifact("repo2")
	if len(form.SyntheticNames(create.Form.Elements)) != 0 {
		t.Fatalf("operation mode must not add toggles")
	}
}

func TestGenerateAppliesSubset(t *testing.T) {
	bundle := generate(t, artifact.WithSubset(artifact.Subset{Accessors: []string{"GET"}}))

	if bundle.Report.Total != 1 || len(bundle.Artifacts) != 1 || bundle.Artifacts[0].Operation != "getRepo" {
		t.Fatalf("unexpected subset result %#v", bundle.Report)
	}
}

func TestNewRejectsUnknownRenderer(t *testing.T) {
	if _, err := artifact.New(artifact.WithRenderers("pdf")); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

type failingRenderer struct{}

func (failingRenderer) Name() string        { return "broken" }
func (failingRenderer) ContentType() string { return "text/plain" }
func (failingRenderer) Render(context.Context, render.View) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestGeneratePropagatesRendererErrors(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(failingRenderer{})
	gen, err := artifact.New(artifact.WithRegistry(registry))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	_, err = gen.Generate(context.Background(), testsupport.MustDecodeModule(t, moduleDocument))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	gen, err := artifact.New()
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, typedesc.Module{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
