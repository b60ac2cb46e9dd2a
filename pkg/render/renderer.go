package render

import (
	"context"

	"github.com/goliatone/go-paramgen/pkg/form"
	"github.com/goliatone/go-paramgen/pkg/wire"
)

// View carries everything generated for one operation.
type View struct {
	Module string `json:"module"`
	// Name is the resolved, container-unique operation name.
	Name        string             `json:"name"`
	Operation   string             `json:"operation"`
	Kind        string             `json:"kind"`
	Accessor    string             `json:"accessor,omitempty"`
	Path        string             `json:"path,omitempty"`
	Doc         string             `json:"doc,omitempty"`
	Wire        wire.Declarations  `json:"wire"`
	Descriptors []wire.Descriptor  `json:"descriptors"`
	Form        form.Schema        `json:"form"`
}

// WireText returns the declarations joined with line continuations.
func (v View) WireText() string {
	return v.Wire.String()
}

// ModuleView groups the operation views of one container.
type ModuleView struct {
	Name       string `json:"name"`
	Doc        string `json:"doc,omitempty"`
	Operations []View `json:"operations"`
}

// Renderer converts one operation view into an output document.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
}

// ModuleRenderer converts a whole container into one output document.
type ModuleRenderer interface {
	Name() string
	ContentType() string
	RenderModule(ctx context.Context, view ModuleView) ([]byte, error)
}
