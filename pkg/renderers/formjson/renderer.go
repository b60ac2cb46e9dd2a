package formjson

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-paramgen/pkg/render"
)

// Name identifies the renderer in a render.Registry.
const Name = "form.json"

type Option func(*Renderer)

// WithIndent sets the indentation used for the JSON document. An empty
// string produces compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits the form schema of an operation as a JSON document.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with two-space indentation.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(view.Form)
	} else {
		out, err = json.MarshalIndent(view.Form, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("formjson: encode %q: %w", view.Name, err)
	}
	return out, nil
}
