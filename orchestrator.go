package paramgen

import (
	"context"

	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/orchestrator"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Bundle aliases artifact.Bundle for callers using the top-level package.
type Bundle = artifact.Bundle

// Subset aliases artifact.Subset for callers selecting operations.
type Subset = artifact.Subset

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the source, detects whether it is a descriptor module or an
// OpenAPI document, and generates artifacts for every operation.
func Generate(ctx context.Context, source typedesc.Source, options ...orchestrator.Option) (Bundle, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Source: source})
}

// GenerateFromDocument generates artifacts from a pre-loaded document.
func GenerateFromDocument(ctx context.Context, doc typedesc.Document, options ...orchestrator.Option) (Bundle, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Document: &doc})
}

// GenerateModule generates artifacts from an already parsed module.
func GenerateModule(ctx context.Context, module typedesc.Module, options ...orchestrator.Option) (Bundle, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Module: &module})
}

// WithGeneratorOptions forwards artifact generator options.
func WithGeneratorOptions(options ...artifact.Option) orchestrator.Option {
	return orchestrator.WithGeneratorOptions(options...)
}

// WithSubset limits generation to the operations matched by subset.
func WithSubset(subset Subset) orchestrator.Option {
	return orchestrator.WithGeneratorOptions(artifact.WithSubset(subset))
}
