package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-paramgen/pkg/openapi"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

var methods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// Module converts a Document into a descriptor module. Operations are ordered
// by path and then by HTTP method.
func (p *Parser) Module(ctx context.Context, doc typedesc.Document) (typedesc.Module, error) {
	if err := ctx.Err(); err != nil {
		return typedesc.Module{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return typedesc.Module{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return typedesc.Module{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return typedesc.Module{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if (api.Paths == nil || api.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return typedesc.Module{}, errors.New("openapi parser: document does not contain any paths")
	}

	conv := newConverter()
	module := typedesc.Module{Types: conv.named}
	if api.Info != nil {
		module.Name = api.Info.Title
		module.Doc = api.Info.Description
	}
	if api.Components != nil {
		conv.components(api.Components.Schemas)
	}

	if api.Paths != nil {
		paths := api.Paths.Map()
		keys := make([]string, 0, len(paths))
		for path := range paths {
			keys = append(keys, path)
		}
		sort.Strings(keys)
		for _, path := range keys {
			item := paths[path]
			if item == nil {
				continue
			}
			for _, method := range methods {
				if err := ctx.Err(); err != nil {
					return typedesc.Module{}, err
				}
				operation := item.GetOperation(method)
				if operation == nil {
					continue
				}
				module.Operations = append(module.Operations, conv.operation(method, path, item.Parameters, operation))
			}
		}
	}

	if len(module.Operations) == 0 && !p.options.AllowPartialDocuments {
		return typedesc.Module{}, errors.New("openapi parser: no operations extracted")
	}
	return module, nil
}

func (c *converter) operation(method, path string, shared openapi3.Parameters, operation *openapi3.Operation) typedesc.Operation {
	name := operation.OperationID
	if name == "" {
		name = strings.ToLower(method) + ":" + path
	}
	op := typedesc.Operation{
		Name:     name,
		ID:       operation.OperationID,
		Kind:     typedesc.OperationResource,
		Accessor: strings.ToLower(method),
		Path:     typedesc.ParsePath(path),
		Doc:      firstNonEmpty(operation.Summary, operation.Description),
	}

	for _, parameter := range mergeParameters(shared, operation.Parameters) {
		if parameter.In == openapi3.ParameterInCookie {
			continue
		}
		var schema *openapi3.SchemaRef
		if parameter.Schema != nil {
			schema = parameter.Schema
		} else {
			schema = mediaSchema(parameter.Content)
		}
		typ := c.convert(schema)
		param := typedesc.Param{
			Name:       parameter.Name,
			Type:       typ,
			HasDefault: !parameter.Required,
			Doc:        parameter.Description,
		}
		if schema != nil && schema.Value != nil && schema.Value.Default != nil {
			param.HasDefault = true
			param.Default = schema.Value.Default
		}
		op.Params = append(op.Params, param)
	}

	if body := operation.RequestBody; body != nil && body.Value != nil {
		if schema := mediaSchema(body.Value.Content); schema != nil {
			op.Params = append(op.Params, typedesc.Param{
				Name:       pkgopenapi.PayloadParam,
				Type:       c.convert(schema),
				HasDefault: !body.Value.Required,
				Doc:        body.Value.Description,
			})
		}
	}

	if operation.Responses != nil {
		for _, status := range []string{"200", "201"} {
			ref := operation.Responses.Value(status)
			if ref == nil || ref.Value == nil {
				continue
			}
			if schema := mediaSchema(ref.Value.Content); schema != nil {
				op.Return = c.convert(schema)
				break
			}
		}
	}
	return op
}

// mergeParameters lets operation-level parameters override path-level ones
// with the same name and location.
func mergeParameters(shared, own openapi3.Parameters) []*openapi3.Parameter {
	var out []*openapi3.Parameter
	index := make(map[string]int)
	add := func(params openapi3.Parameters) {
		for _, ref := range params {
			if ref == nil || ref.Value == nil || ref.Value.Name == "" {
				continue
			}
			key := ref.Value.In + ":" + ref.Value.Name
			if pos, ok := index[key]; ok {
				out[pos] = ref.Value
				continue
			}
			index[key] = len(out)
			out = append(out, ref.Value)
		}
	}
	add(shared)
	add(own)
	return out
}

func mediaSchema(content openapi3.Content) *openapi3.SchemaRef {
	if len(content) == 0 {
		return nil
	}
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if mt := content[keys[0]]; mt != nil {
		return mt.Schema
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
