package typedesc

import "strings"

// OperationKind distinguishes connection initialisers from invocable
// operations.
type OperationKind string

const (
	OperationInit     OperationKind = "init"
	OperationRemote   OperationKind = "remote"
	OperationResource OperationKind = "resource"
)

// PathSegment is one segment of a resource path. Exactly one of Literal and
// Param is set.
type PathSegment struct {
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Param   string `json:"param,omitempty" yaml:"param,omitempty"`
}

// IsParam reports whether the segment is a path parameter.
func (s PathSegment) IsParam() bool {
	return s.Param != ""
}

// ParsePath splits a resource path such as "users/[id]/posts" or
// "/users/{id}/posts" into segments.
func ParsePath(raw string) []PathSegment {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" || trimmed == "." {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	out := make([]PathSegment, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]"):
			inner := strings.TrimSpace(part[1 : len(part)-1])
			// "[string id]" carries a type before the name.
			if fields := strings.Fields(inner); len(fields) > 0 {
				inner = fields[len(fields)-1]
			}
			out = append(out, PathSegment{Param: inner})
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			out = append(out, PathSegment{Param: strings.TrimSpace(part[1 : len(part)-1])})
		default:
			out = append(out, PathSegment{Literal: part})
		}
	}
	return out
}

// Param is a declared operation parameter.
type Param struct {
	Name       string
	Type       Descriptor
	HasDefault bool
	Default    any
	Doc        string
}

// Required reports whether callers must supply the parameter.
func (p Param) Required() bool {
	return !p.HasDefault
}

// Operation captures the signature and naming metadata of one operation.
type Operation struct {
	Name string
	// ID is an explicitly declared external identifier, if any.
	ID       string
	Kind     OperationKind
	Accessor string
	Path     []PathSegment
	Params   []Param
	Return   Descriptor
	Doc      string
}

// Module groups the operations of one container (client/connector).
type Module struct {
	Name       string
	Doc        string
	Types      map[string]*Type
	Operations []Operation
}
