package artifact

import (
	"runtime"

	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/render"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithClassifier injects a custom classifier.
func WithClassifier(classifier param.Classifier) Option {
	return func(g *Generator) {
		g.classifier = classifier
	}
}

// WithResolver injects a custom name resolver.
func WithResolver(resolver *naming.Resolver) Option {
	return func(g *Generator) {
		g.resolver = resolver
	}
}

// WithRegistry injects the renderer registry. Without one the generator
// registers the connector XML and form JSON renderers.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithRenderers restricts operation outputs to the named renderers. By default
// every registered operation renderer runs.
func WithRenderers(names ...string) Option {
	return func(g *Generator) {
		g.renderers = append([]string(nil), names...)
		g.renderersSet = true
	}
}

// WithModuleRenderers restricts module outputs to the named renderers.
func WithModuleRenderers(names ...string) Option {
	return func(g *Generator) {
		g.moduleRenderers = append([]string(nil), names...)
		g.moduleRenderersSet = true
	}
}

// WithConcurrency bounds the number of operations processed at once. Values
// below one fall back to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		g.concurrency = n
	}
}

// WithOpaqueRecords renders records as single structured inputs in the form
// schema instead of expanding their fields.
func WithOpaqueRecords(enabled bool) Option {
	return func(g *Generator) {
		g.opaque = enabled
	}
}

// WithLabeler overrides the display-name function used by the form renderer.
func WithLabeler(labeler func(string) string) Option {
	return func(g *Generator) {
		g.labeler = labeler
	}
}

// WithSubset limits generation to the operations matched by subset.
func WithSubset(subset Subset) Option {
	return func(g *Generator) {
		g.subset = subset
	}
}

func defaultConcurrency() int {
	return runtime.GOMAXPROCS(0)
}
