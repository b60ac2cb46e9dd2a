package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-paramgen/internal/loader"
	internalParser "github.com/goliatone/go-paramgen/internal/openapi/parser"
	"github.com/goliatone/go-paramgen/pkg/artifact"
	pkgopenapi "github.com/goliatone/go-paramgen/pkg/openapi"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Format names an input document format.
type Format string

const (
	// FormatAuto detects the format from the document content.
	FormatAuto Format = ""
	// FormatDescriptor is a YAML/JSON descriptor module.
	FormatDescriptor Format = "descriptor"
	// FormatOpenAPI is an OpenAPI 3 document.
	FormatOpenAPI Format = "openapi"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader typedesc.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithGenerator injects a configured artifact generator.
func WithGenerator(generator *artifact.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = generator
	}
}

// WithGeneratorOptions configures the default generator. Ignored when
// WithGenerator is supplied.
func WithGeneratorOptions(options ...artifact.Option) Option {
	return func(o *Orchestrator) {
		o.generatorOptions = append(o.generatorOptions, options...)
	}
}

// WithTransformers registers transformers that run, in order, on the parsed
// module before generation.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Orchestrator coordinates the pipeline from a document source to an artifact
// bundle. Missing collaborators default to the built-in implementations.
type Orchestrator struct {
	loader           typedesc.Loader
	parser           pkgopenapi.Parser
	generator        *artifact.Generator
	generatorOptions []artifact.Option
	transformers     []Transformer
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source typedesc.Source

	// Document bypasses the loader.
	Document *typedesc.Document

	// Module bypasses loading and parsing entirely.
	Module *typedesc.Module

	// Format forces the document format; FormatAuto detects it.
	Format Format
}

// Generate executes load → parse → transform → generate and returns the
// resulting bundle.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (artifact.Bundle, error) {
	if ctx == nil {
		return artifact.Bundle{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return artifact.Bundle{}, err
	}
	if err := o.initialiseErr; err != nil {
		return artifact.Bundle{}, err
	}

	module, err := o.Module(ctx, req)
	if err != nil {
		return artifact.Bundle{}, err
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &module); err != nil {
			return artifact.Bundle{}, fmt.Errorf("orchestrator: transform module: %w", err)
		}
	}

	bundle, err := o.generator.Generate(ctx, module)
	if err != nil {
		return artifact.Bundle{}, fmt.Errorf("orchestrator: generate: %w", err)
	}
	return bundle, nil
}

// Module resolves the request into a descriptor module without generating
// artifacts. Transformers are not applied.
func (o *Orchestrator) Module(ctx context.Context, req Request) (typedesc.Module, error) {
	if req.Module != nil {
		return *req.Module, nil
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return typedesc.Module{}, err
	}

	format := req.Format
	if format == FormatAuto {
		format = FormatDescriptor
		if pkgopenapi.Detect(doc.Raw()) {
			format = FormatOpenAPI
		}
	}

	switch format {
	case FormatOpenAPI:
		module, err := o.parser.Module(ctx, doc)
		if err != nil {
			return typedesc.Module{}, fmt.Errorf("orchestrator: parse openapi: %w", err)
		}
		return module, nil
	case FormatDescriptor:
		module, err := typedesc.Decode(doc)
		if err != nil {
			return typedesc.Module{}, fmt.Errorf("orchestrator: decode descriptors: %w", err)
		}
		return module, nil
	default:
		return typedesc.Module{}, fmt.Errorf("orchestrator: unknown format %q", format)
	}
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (typedesc.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return typedesc.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return typedesc.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(typedesc.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.generator == nil {
		generator, err := artifact.New(o.generatorOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default generator: %w", err)
			return
		}
		o.generator = generator
	}
}
