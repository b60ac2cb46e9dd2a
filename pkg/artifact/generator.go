package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-paramgen/pkg/form"
	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/render"
	"github.com/goliatone/go-paramgen/pkg/renderers/connector"
	"github.com/goliatone/go-paramgen/pkg/renderers/formjson"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
	"github.com/goliatone/go-paramgen/pkg/wire"
)

// Generator turns descriptor modules into artifact bundles.
type Generator struct {
	classifier         param.Classifier
	resolver           *naming.Resolver
	registry           *render.Registry
	renderers          []string
	renderersSet       bool
	moduleRenderers    []string
	moduleRenderersSet bool
	concurrency        int
	opaque             bool
	labeler            func(string) string
	subset             Subset
}

// New constructs a Generator applying options. Missing collaborators are
// initialised with the built-in implementations.
func New(options ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}

	if g.classifier == nil {
		g.classifier = param.NewClassifier()
	}
	if g.resolver == nil {
		g.resolver = naming.NewResolver()
	}
	if g.concurrency < 1 {
		g.concurrency = defaultConcurrency()
	}
	if g.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		g.registry = registry
	}
	if !g.renderersSet {
		g.renderers = g.registry.List()
	}
	if !g.moduleRenderersSet {
		g.moduleRenderers = g.registry.ListModules()
	}
	for _, name := range g.renderers {
		if _, err := g.registry.Get(name); err != nil {
			return nil, fmt.Errorf("artifact: %w", err)
		}
	}
	for _, name := range g.moduleRenderers {
		if _, err := g.registry.GetModule(name); err != nil {
			return nil, fmt.Errorf("artifact: %w", err)
		}
	}
	return g, nil
}

// DefaultRegistry returns a registry holding the connector XML renderers and
// the form JSON renderer.
func DefaultRegistry(options ...connector.Option) (*render.Registry, error) {
	registry := render.NewRegistry()
	xml, err := connector.New(options...)
	if err != nil {
		return nil, fmt.Errorf("artifact: default renderers: %w", err)
	}
	if err := xml.Register(registry); err != nil {
		return nil, fmt.Errorf("artifact: default renderers: %w", err)
	}
	if err := registry.Register(formjson.New()); err != nil {
		return nil, fmt.Errorf("artifact: default renderers: %w", err)
	}
	return registry, nil
}

// Generate classifies, names and renders every selected operation of module.
// Operations whose required parameters cannot be represented are reported in
// Bundle.Report.Skipped instead of failing the call.
func (g *Generator) Generate(ctx context.Context, module typedesc.Module) (Bundle, error) {
	if ctx == nil {
		return Bundle{}, errors.New("artifact: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}

	ops := g.subset.Apply(module.Operations)
	results := make([]param.OperationResult, len(ops))

	classify, classifyCtx := errgroup.WithContext(ctx)
	classify.SetLimit(g.concurrency)
	for i, op := range ops {
		classify.Go(func() error {
			if err := classifyCtx.Err(); err != nil {
				return err
			}
			result, err := g.classifier.ClassifyOperation(op)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := classify.Wait(); err != nil {
		return Bundle{}, fmt.Errorf("artifact: classify: %w", err)
	}

	bundle := Bundle{
		Module: module.Name,
		Report: Report{Total: len(ops)},
	}

	names := make([]string, len(ops))
	dedupe := naming.NewDeduper()
	for i, op := range ops {
		name := g.resolver.ResolveOr(op)
		if results[i].Skipped {
			bundle.Report.Skipped = append(bundle.Report.Skipped, SkippedOperation{
				Operation: op.Name,
				Name:      name,
				Reason:    results[i].Reason,
				Warnings:  results[i].Warnings,
			})
			continue
		}
		names[i] = dedupe.Unique(name)
	}

	artifacts := make([]*Artifact, len(ops))
	build, buildCtx := errgroup.WithContext(ctx)
	build.SetLimit(g.concurrency)
	for i := range ops {
		if results[i].Skipped {
			continue
		}
		build.Go(func() error {
			artifact, err := g.build(buildCtx, module, names[i], results[i])
			if err != nil {
				return err
			}
			artifacts[i] = artifact
			return nil
		})
	}
	if err := build.Wait(); err != nil {
		return Bundle{}, err
	}

	for i, artifact := range artifacts {
		if artifact == nil {
			continue
		}
		bundle.Artifacts = append(bundle.Artifacts, *artifact)
		for _, warning := range results[i].Warnings {
			bundle.Report.Warnings = append(bundle.Report.Warnings, OperationWarning{
				Operation: ops[i].Name,
				Warning:   warning,
			})
		}
	}
	bundle.Report.Generated = len(bundle.Artifacts)

	moduleView := render.ModuleView{Name: module.Name, Doc: module.Doc}
	for _, artifact := range bundle.Artifacts {
		moduleView.Operations = append(moduleView.Operations, artifact.View)
	}
	for _, name := range g.moduleRenderers {
		renderer, err := g.registry.GetModule(name)
		if err != nil {
			return Bundle{}, fmt.Errorf("artifact: %w", err)
		}
		content, err := renderer.RenderModule(ctx, moduleView)
		if err != nil {
			return Bundle{}, fmt.Errorf("artifact: module renderer %q: %w", name, err)
		}
		bundle.Outputs = append(bundle.Outputs, Output{
			Renderer:    name,
			ContentType: renderer.ContentType(),
			Content:     string(content),
		})
	}
	return bundle, nil
}

func (g *Generator) build(ctx context.Context, module typedesc.Module, name string, result param.OperationResult) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	op := result.Operation

	decls, err := wire.Render(result.Params)
	if err != nil {
		return nil, fmt.Errorf("artifact: operation %q: wire: %w", op.Name, err)
	}
	descriptors, err := wire.Descriptors(result.Params, nil)
	if err != nil {
		return nil, fmt.Errorf("artifact: operation %q: descriptors: %w", op.Name, err)
	}

	mode := form.ModeOperation
	if op.Kind == typedesc.OperationInit {
		mode = form.ModeConfig
	}
	schema, err := form.Render(result.Params, form.Context{
		Mode:    mode,
		Opaque:  g.opaque,
		Labeler: g.labeler,
	})
	if err != nil {
		return nil, fmt.Errorf("artifact: operation %q: form: %w", op.Name, err)
	}

	artifact := &Artifact{
		View: render.View{
			Module:      module.Name,
			Name:        name,
			Operation:   op.Name,
			Kind:        string(op.Kind),
			Accessor:    op.Accessor,
			Path:        FormatPath(op.Path),
			Doc:         op.Doc,
			Wire:        decls,
			Descriptors: descriptors,
			Form:        schema,
		},
		Warnings: result.Warnings,
	}

	for _, rendererName := range g.renderers {
		renderer, err := g.registry.Get(rendererName)
		if err != nil {
			return nil, fmt.Errorf("artifact: %w", err)
		}
		content, err := renderer.Render(ctx, artifact.View)
		if err != nil {
			return nil, fmt.Errorf("artifact: operation %q: renderer %q: %w", op.Name, rendererName, err)
		}
		artifact.Outputs = append(artifact.Outputs, Output{
			Renderer:    rendererName,
			ContentType: renderer.ContentType(),
			Content:     string(content),
		})
	}
	return artifact, nil
}

// FormatPath renders path segments as "/users/{id}". An empty path yields
// the empty string.
func FormatPath(segments []typedesc.PathSegment) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		if segment.IsParam() {
			b.WriteString("{" + segment.Param + "}")
			continue
		}
		b.WriteString(segment.Literal)
	}
	return b.String()
}
