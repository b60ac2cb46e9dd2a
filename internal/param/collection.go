package param

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

func (w *walker) mapNode(name string, d typedesc.Descriptor, info fieldInfo) Node {
	elements, ok := w.elements(name, d.Elem(), false, info.required)
	if !ok {
		return nil
	}
	return &Map{
		Header:   w.header(name, KindMap, strings.TrimSpace(d.Name()), info),
		Elements: elements,
	}
}

func (w *walker) array(name string, d typedesc.Descriptor, info fieldInfo) Node {
	elements, ok := w.elements(name, d.Elem(), true, info.required)
	if !ok {
		return nil
	}
	return &Array{
		Header:     w.header(name, KindArray, strings.TrimSpace(d.Name()), info),
		Elements:   elements,
		TwoD:       elements.ElemKind == KindArray && elements.Table,
		UnionArray: len(elements.UnionTypes) > 0,
	}
}

// elements decides how a map value or array element is presented. Nested
// arrays and scalar unions only render as tables inside arrays. Columns of an
// optional collection are never required.
func (w *walker) elements(name string, elem typedesc.Descriptor, nested, required bool) (Elements, bool) {
	if !representable(elem, 0) {
		return Elements{}, false
	}
	switch elem.Kind() {
	case typedesc.KindPrimitive:
		return Elements{ElemKind: Kind(elem.Primitive()), Table: true}, true
	case typedesc.KindAnydata:
		return Elements{ElemKind: KindJSON, Table: true}, true
	case typedesc.KindTypeDesc:
		return Elements{ElemKind: KindString, Table: true}, true
	case typedesc.KindRecord:
		columns := w.columns(name, elem, required)
		return Elements{ElemKind: KindRecord, Fields: columns, Table: len(columns) > 0}, true
	case typedesc.KindMap:
		return Elements{ElemKind: KindMap}, true
	case typedesc.KindArray:
		if inner, ok := scalarKind(elem.Elem()); ok && nested {
			return Elements{ElemKind: KindArray, InnerKind: inner, Table: true}, true
		}
		return Elements{ElemKind: KindArray}, true
	case typedesc.KindUnion:
		members, _ := w.unionMembers(name, elem)
		if len(members) == 1 && members[0].desc.Kind() != typedesc.KindUnion {
			return w.elements(name, members[0].desc, nested, required)
		}
		labels := make([]string, 0, len(members))
		for _, member := range members {
			if _, ok := scalarKind(member.desc); !ok {
				return Elements{ElemKind: KindUnion}, true
			}
			labels = append(labels, member.label)
		}
		if !nested {
			return Elements{ElemKind: KindUnion}, true
		}
		return Elements{ElemKind: KindUnion, UnionTypes: labels, Table: true}, true
	}
	return Elements{}, false
}

// columns expands a record element into flat table columns. Composite field
// types become opaque json columns.
func (w *walker) columns(name string, record typedesc.Descriptor, required bool) []Node {
	var columns []Node
	for _, field := range record.Fields() {
		path := JoinPath(name, field.Name)
		kind, ok := columnKind(field.Type)
		if !ok {
			w.warnings.Add(path, WarningUnsupportedType, fmt.Sprintf("column type %s is not supported, column skipped", typedesc.FormatType(field.Type)))
			continue
		}
		if !w.budget.Reserve() {
			w.warnings.Add(path, WarningBudgetExhausted, "expansion budget exhausted, column dropped")
			continue
		}
		typeName := string(kind)
		if field.Type != nil && field.Type.Kind() != typedesc.KindPrimitive {
			typeName = typedesc.FormatType(field.Type)
		}
		columns = append(columns, &Simple{Header: Header{
			Name:        field.Name,
			Kind:        kind,
			TypeName:    typeName,
			Required:    required && field.Required() && !acceptsNil(field.Type),
			Description: field.Doc,
			Default:     field.Default,
		}})
	}
	return columns
}

func columnKind(d typedesc.Descriptor) (Kind, bool) {
	if !representable(d, 0) {
		return "", false
	}
	if kind, ok := scalarKind(d); ok {
		return kind, true
	}
	if d.Kind() == typedesc.KindUnion {
		var only typedesc.Descriptor
		count := 0
		for _, member := range d.Members() {
			if member == nil || member.Kind() == typedesc.KindNil || !representable(member, 0) {
				continue
			}
			only = member
			count++
		}
		if count == 1 {
			if kind, ok := scalarKind(only); ok {
				return kind, true
			}
		}
	}
	return KindJSON, true
}

// scalarKind maps primitive and plain-data descriptors to their node kind.
func scalarKind(d typedesc.Descriptor) (Kind, bool) {
	if d == nil {
		return "", false
	}
	switch d.Kind() {
	case typedesc.KindPrimitive:
		return Kind(d.Primitive()), true
	case typedesc.KindAnydata:
		return KindJSON, true
	}
	return "", false
}

// acceptsNil reports whether d is a union with a nil member.
func acceptsNil(d typedesc.Descriptor) bool {
	if d == nil || d.Kind() != typedesc.KindUnion {
		return false
	}
	for _, member := range d.Members() {
		if member == nil || member.Kind() == typedesc.KindNil {
			return true
		}
	}
	return false
}
