package connector

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-paramgen/pkg/render"
	rendertemplate "github.com/goliatone/go-paramgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-paramgen/pkg/render/template/gotemplate"
)

// Renderer names.
const (
	OperationName = "operation.xml"
	ComponentName = "component.xml"
)

// DefaultInvoker is the runtime class the generated sequences call.
const DefaultInvoker = "org.paramgen.connector.Invoker"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	invoker          string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide the OperationTemplate and ComponentTemplate paths.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithInvoker overrides the class name written into operation sequences.
func WithInvoker(class string) Option {
	return func(cfg *config) {
		if class != "" {
			cfg.invoker = class
		}
	}
}

// Renderer stamps connector XML from operation and module views. One value
// serves both render.Renderer and render.ModuleRenderer through Operation and
// Component.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	invoker   string
}

// New constructs the connector renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), invoker: DefaultInvoker}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("connector renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, invoker: cfg.invoker}, nil
}

// Operation returns the per-operation renderer.
func (r *Renderer) Operation() render.Renderer {
	return operationRenderer{r}
}

// Component returns the module-level renderer.
func (r *Renderer) Component() render.ModuleRenderer {
	return componentRenderer{r}
}

// Register adds both renderers to registry.
func (r *Renderer) Register(registry *render.Registry) error {
	if err := registry.Register(r.Operation()); err != nil {
		return err
	}
	return registry.RegisterModule(r.Component())
}

type operationRenderer struct{ r *Renderer }

func (o operationRenderer) Name() string        { return OperationName }
func (o operationRenderer) ContentType() string { return "application/xml" }

func (o operationRenderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.r == nil || o.r.templates == nil {
		return nil, fmt.Errorf("connector renderer: template renderer is nil")
	}
	out, err := o.r.templates.RenderTemplate(OperationTemplate, map[string]any{
		"view":    view,
		"invoker": o.r.invoker,
	})
	if err != nil {
		return nil, fmt.Errorf("connector renderer: render operation %q: %w", view.Name, err)
	}
	return []byte(out), nil
}

type componentRenderer struct{ r *Renderer }

func (c componentRenderer) Name() string        { return ComponentName }
func (c componentRenderer) ContentType() string { return "application/xml" }

func (c componentRenderer) RenderModule(ctx context.Context, view render.ModuleView) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.r == nil || c.r.templates == nil {
		return nil, fmt.Errorf("connector renderer: template renderer is nil")
	}
	out, err := c.r.templates.RenderTemplate(ComponentTemplate, map[string]any{
		"module": view,
	})
	if err != nil {
		return nil, fmt.Errorf("connector renderer: render component: %w", err)
	}
	return []byte(out), nil
}
