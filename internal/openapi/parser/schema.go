package parser

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

const componentPrefix = "#/components/schemas/"

// converter maps kin-openapi schemas onto descriptor types. Schemas are
// memoized by pointer so shared and recursive references resolve to the same
// *typedesc.Type.
type converter struct {
	memo  map[*openapi3.Schema]*typedesc.Type
	named map[string]*typedesc.Type
}

func newConverter() *converter {
	return &converter{
		memo:  make(map[*openapi3.Schema]*typedesc.Type),
		named: make(map[string]*typedesc.Type),
	}
}

// components converts named component schemas first so references carry the
// component name.
func (c *converter) components(schemas openapi3.Schemas) {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		c.named[name] = c.base(ref.Value, name)
	}
}

// convert returns the descriptor for ref, wrapping nullable schemas in an
// optional union.
func (c *converter) convert(ref *openapi3.SchemaRef) *typedesc.Type {
	if ref == nil || ref.Value == nil {
		return typedesc.Simple(typedesc.KindAnydata)
	}
	t := c.base(ref.Value, refName(ref.Ref))
	if ref.Value.Nullable {
		return typedesc.Optional(t)
	}
	return t
}

func (c *converter) base(schema *openapi3.Schema, name string) *typedesc.Type {
	if existing, ok := c.memo[schema]; ok {
		return existing
	}
	// Register before descending so cycles terminate on the placeholder.
	t := &typedesc.Type{}
	c.memo[schema] = t

	switch {
	case len(schema.OneOf) > 0 || len(schema.AnyOf) > 0:
		refs := schema.OneOf
		if len(refs) == 0 {
			refs = schema.AnyOf
		}
		members := make([]*typedesc.Type, 0, len(refs))
		for _, member := range refs {
			members = append(members, c.convert(member))
		}
		*t = *typedesc.NewUnion(members...)
		t.TypeName = name
	case len(schema.AllOf) > 0:
		*t = typedesc.Type{TypeKind: typedesc.KindRecord, TypeName: name}
		var fields []typedesc.Field
		for _, part := range schema.AllOf {
			if part == nil || part.Value == nil {
				continue
			}
			fields = appendFields(fields, c.convert(part).Fields())
		}
		fields = appendFields(fields, c.properties(schema))
		t.FieldList = fields
	default:
		*t = *c.typed(schema, name)
	}
	return t
}

func (c *converter) typed(schema *openapi3.Schema, name string) *typedesc.Type {
	switch schemaType(schema) {
	case openapi3.TypeString:
		return named(typedesc.NewPrimitive(typedesc.PrimitiveString), name)
	case openapi3.TypeInteger:
		return named(typedesc.NewPrimitive(typedesc.PrimitiveInt), name)
	case openapi3.TypeNumber:
		if schema.Format == "decimal" {
			return named(typedesc.NewPrimitive(typedesc.PrimitiveDecimal), name)
		}
		return named(typedesc.NewPrimitive(typedesc.PrimitiveFloat), name)
	case openapi3.TypeBoolean:
		return named(typedesc.NewPrimitive(typedesc.PrimitiveBoolean), name)
	case openapi3.TypeArray:
		arr := typedesc.NewArray(c.convert(schema.Items))
		arr.TypeName = name
		return arr
	case openapi3.TypeObject, "":
		if len(schema.Properties) > 0 {
			rec := typedesc.NewRecord(name, c.properties(schema)...)
			return rec
		}
		if additional := schema.AdditionalProperties.Schema; additional != nil {
			m := typedesc.NewMap(c.convert(additional))
			m.TypeName = name
			return m
		}
		if has := schema.AdditionalProperties.Has; has != nil && *has {
			m := typedesc.NewMap(typedesc.Simple(typedesc.KindAnydata))
			m.TypeName = name
			return m
		}
		return typedesc.Simple(typedesc.KindAnydata)
	default:
		return typedesc.Simple(typedesc.KindAnydata)
	}
}

// named attaches a component name to a primitive as an alias so unions keep
// the primitive label while the name stays visible.
func named(t *typedesc.Type, name string) *typedesc.Type {
	if name == "" {
		return t
	}
	return t.Aliased(name)
}

func (c *converter) properties(schema *openapi3.Schema) []typedesc.Field {
	if len(schema.Properties) == 0 {
		return nil
	}
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]typedesc.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		_, isRequired := required[name]
		field := typedesc.Field{
			Name:     name,
			Type:     c.convert(ref),
			Optional: !isRequired,
		}
		if ref != nil && ref.Value != nil {
			field.Doc = ref.Value.Description
			if ref.Value.Default != nil {
				field.HasDefault = true
				field.Default = ref.Value.Default
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func appendFields(existing []typedesc.Field, next []typedesc.Field) []typedesc.Field {
	for _, field := range next {
		replaced := false
		for i := range existing {
			if existing[i].Name == field.Name {
				existing[i] = field
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, field)
		}
	}
	return existing
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, value := range schema.Type.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}

func refName(ref string) string {
	if !strings.HasPrefix(ref, componentPrefix) {
		return ""
	}
	return strings.TrimPrefix(ref, componentPrefix)
}
