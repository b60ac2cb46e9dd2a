package param

// Kind is the declared kind of a classified parameter. Renderers dispatch on
// Kind and then require the matching Node variant.
type Kind string

const (
	KindString  Kind = "string"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindDecimal Kind = "decimal"
	KindBoolean Kind = "boolean"
	KindXML     Kind = "xml"
	KindJSON    Kind = "json"
	KindRecord  Kind = "record"
	KindMap     Kind = "map"
	KindArray   Kind = "array"
	KindUnion   Kind = "union"
)

// IsScalar reports whether the kind renders as a single input value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindDecimal, KindBoolean, KindXML, KindJSON:
		return true
	default:
		return false
	}
}

// Node is one classified parameter or field. The set of implementations is
// closed: Simple, Record, Map, Array and Union.
type Node interface {
	Info() *Header
	node()
}

// Header carries the attributes every variant shares.
type Header struct {
	// Name is the qualified dotted value name, e.g. "config.auth.token".
	Name string `json:"name"`
	// Kind is the declared kind used for renderer dispatch.
	Kind Kind `json:"kind"`
	// TypeName is the display type name (record name, union member label).
	TypeName    string `json:"typeName,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	// Condition is the visibility condition attached to this node only;
	// renderers merge ancestor conditions on the way down.
	Condition string `json:"condition,omitempty"`
}

// Leaf returns the last segment of the dotted value name.
func (h *Header) Leaf() string {
	for i := len(h.Name) - 1; i >= 0; i-- {
		if h.Name[i] == '.' {
			return h.Name[i+1:]
		}
	}
	return h.Name
}

// Simple is a scalar or opaque structured value.
type Simple struct {
	Header
}

// Record is an expanded record whose fields flatten into the owning scope.
type Record struct {
	Header
	// Path is the qualified dotted path of the record's position in the tree.
	Path   string `json:"path"`
	Fields []Node `json:"fields,omitempty"`
}

// Elements describes what a map value or array element expands into.
type Elements struct {
	// ElemKind is the kind of the value/element type.
	ElemKind Kind `json:"elemKind"`
	// Fields holds table columns when the element is a record.
	Fields []Node `json:"fields,omitempty"`
	// Table reports whether the collection renders as tabular input.
	Table bool `json:"table"`
	// UnionTypes lists member labels when the element is a union.
	UnionTypes []string `json:"unionTypes,omitempty"`
	// InnerKind is the element kind of a nested array (2-D).
	InnerKind Kind `json:"innerKind,omitempty"`
}

// Map is a string-keyed map parameter.
type Map struct {
	Header
	Elements
}

// Array is a list parameter.
type Array struct {
	Header
	Elements
	// TwoD reports the element is itself an array.
	TwoD bool `json:"twoD,omitempty"`
	// UnionArray reports the element is a union of scalar members.
	UnionArray bool `json:"unionArray,omitempty"`
}

// Union holds the surviving members of a union. Each member carries its
// display label in TypeName and its selection condition in Condition.
type Union struct {
	Header
	Members []Node `json:"members"`
	// TypeDescriptor marks unions produced from type-descriptor parameters,
	// whose members are name placeholders.
	TypeDescriptor bool `json:"typeDescriptor,omitempty"`
}

func (n *Simple) Info() *Header { return &n.Header }
func (n *Record) Info() *Header { return &n.Header }
func (n *Map) Info() *Header    { return &n.Header }
func (n *Array) Info() *Header  { return &n.Header }
func (n *Union) Info() *Header  { return &n.Header }

// Discriminated reports whether more than one member survived, so a
// discriminator is needed to choose between them.
func (n *Union) Discriminated() bool {
	return len(n.Members) > 1
}

func (*Simple) node() {}
func (*Record) node() {}
func (*Map) node()    {}
func (*Array) node()  {}
func (*Union) node()  {}

// Labels returns the member display labels in order.
func (n *Union) Labels() []string {
	labels := make([]string, 0, len(n.Members))
	for _, member := range n.Members {
		labels = append(labels, member.Info().TypeName)
	}
	return labels
}

// JoinPath joins a parent value name and a child segment.
func JoinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
