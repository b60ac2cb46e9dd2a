package typedesc

// Kind is the closed set of descriptor shapes the classifier understands.
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindRecord    Kind = "record"
	KindMap       Kind = "map"
	KindArray     Kind = "array"
	KindUnion     Kind = "union"
	KindTypeDesc  Kind = "typedesc"
	KindNil       Kind = "nil"

	// KindAnydata is plain structured data with no declared shape.
	KindAnydata Kind = "anydata"
	// KindAny is an open/erased type. It has no renderable form.
	KindAny Kind = "any"
	// KindFunction has no renderable form.
	KindFunction Kind = "function"
)

// Primitive enumerates scalar descriptor kinds.
type Primitive string

const (
	PrimitiveString  Primitive = "string"
	PrimitiveInt     Primitive = "int"
	PrimitiveFloat   Primitive = "float"
	PrimitiveDecimal Primitive = "decimal"
	PrimitiveBoolean Primitive = "boolean"
	PrimitiveXML     Primitive = "xml"
	PrimitiveJSON    Primitive = "json"
)

var primitives = map[string]Primitive{
	"string":  PrimitiveString,
	"int":     PrimitiveInt,
	"float":   PrimitiveFloat,
	"decimal": PrimitiveDecimal,
	"boolean": PrimitiveBoolean,
	"xml":     PrimitiveXML,
	"json":    PrimitiveJSON,
}

// LookupPrimitive maps a primitive keyword to its Primitive value.
func LookupPrimitive(name string) (Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}

// Descriptor is the read-only view of a resolved type consumed by the
// classifier. Implementations may form cycles through Fields/Elem/Members.
type Descriptor interface {
	Kind() Kind
	// Name returns the declared name as written at the use site, which may be
	// an alias of the underlying type.
	Name() string
	// UnderlyingName returns the resolved type's own name.
	UnderlyingName() string
	Primitive() Primitive
	Fields() []Field
	// Elem returns the map value, array element, or typedesc constraint.
	Elem() Descriptor
	Members() []Descriptor
}

// Field describes a record field.
type Field struct {
	Name       string
	Type       Descriptor
	Optional   bool
	HasDefault bool
	Default    any
	Doc        string
}

// Required reports whether callers must supply the field.
func (f Field) Required() bool {
	return !f.Optional && !f.HasDefault
}

// Type is the concrete Descriptor used by documents and adapters.
type Type struct {
	TypeKind   Kind
	TypeName   string
	Alias      string
	Prim       Primitive
	FieldList  []Field
	Element    *Type
	MemberList []*Type
}

var _ Descriptor = (*Type)(nil)

func (t *Type) Kind() Kind {
	if t == nil {
		return KindNil
	}
	return t.TypeKind
}

func (t *Type) Name() string {
	if t == nil {
		return ""
	}
	if t.Alias != "" {
		return t.Alias
	}
	return t.TypeName
}

func (t *Type) UnderlyingName() string {
	if t == nil {
		return ""
	}
	return t.TypeName
}

func (t *Type) Primitive() Primitive {
	if t == nil {
		return ""
	}
	return t.Prim
}

func (t *Type) Fields() []Field {
	if t == nil {
		return nil
	}
	return t.FieldList
}

func (t *Type) Elem() Descriptor {
	if t == nil || t.Element == nil {
		return nil
	}
	return t.Element
}

func (t *Type) Members() []Descriptor {
	if t == nil || len(t.MemberList) == 0 {
		return nil
	}
	out := make([]Descriptor, 0, len(t.MemberList))
	for _, member := range t.MemberList {
		out = append(out, member)
	}
	return out
}

// Aliased returns a shallow copy of t carrying the supplied alias name. The
// copy shares fields and children with t.
func (t *Type) Aliased(alias string) *Type {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Alias = alias
	return &clone
}

// NewPrimitive returns a primitive descriptor.
func NewPrimitive(p Primitive) *Type {
	return &Type{TypeKind: KindPrimitive, TypeName: string(p), Prim: p}
}

// NewRecord returns a named record descriptor.
func NewRecord(name string, fields ...Field) *Type {
	return &Type{TypeKind: KindRecord, TypeName: name, FieldList: fields}
}

// NewArray returns an array descriptor.
func NewArray(elem *Type) *Type {
	return &Type{TypeKind: KindArray, Element: elem}
}

// NewMap returns a map descriptor keyed by string.
func NewMap(value *Type) *Type {
	return &Type{TypeKind: KindMap, Element: value}
}

// NewUnion returns an anonymous union descriptor.
func NewUnion(members ...*Type) *Type {
	return &Type{TypeKind: KindUnion, MemberList: members}
}

// NewTypeDesc returns a type-descriptor descriptor constrained to elem.
func NewTypeDesc(elem *Type) *Type {
	return &Type{TypeKind: KindTypeDesc, Element: elem}
}

// Nil returns the nil descriptor.
func Nil() *Type {
	return &Type{TypeKind: KindNil}
}

// Optional returns t|().
func Optional(t *Type) *Type {
	return NewUnion(t, Nil())
}

// Simple returns a descriptor for one of the non-structured kinds (anydata,
// any, function).
func Simple(kind Kind) *Type {
	return &Type{TypeKind: kind, TypeName: string(kind)}
}
