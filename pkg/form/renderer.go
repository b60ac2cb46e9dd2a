package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/param"
)

// Mode selects how optional composites are presented.
type Mode string

const (
	// ModeOperation renders operation invocation inputs.
	ModeOperation Mode = "operation"
	// ModeConfig renders connection configuration; optional records, maps
	// and arrays are guarded by an "enable" toggle.
	ModeConfig Mode = "config"
)

// Context configures one Render call. The zero value renders operation inputs
// with record expansion enabled.
type Context struct {
	Mode Mode
	// Opaque renders records as a single JSON input instead of expanding them.
	Opaque  bool
	Labeler func(string) string
}

// Render converts params into a form schema. A node whose kind is not backed
// by the matching variant aborts rendering with param.ErrMalformedVariant.
func Render(params []param.Node, ctx Context) (Schema, error) {
	if ctx.Labeler == nil {
		ctx.Labeler = DefaultLabeler
	}
	if ctx.Mode == "" {
		ctx.Mode = ModeOperation
	}
	r := &renderer{ctx: ctx}

	schema := Schema{Elements: []Element{}}
	for _, node := range params {
		elements, err := r.topLevel(node)
		if err != nil {
			return Schema{}, err
		}
		schema.Elements = append(schema.Elements, elements...)
	}
	return schema, nil
}

type renderer struct {
	ctx Context
}

func (r *renderer) label(name string) string {
	return r.ctx.Labeler(name)
}

func (r *renderer) topLevel(node param.Node) ([]Element, error) {
	if node == nil {
		return nil, fmt.Errorf("form: nil parameter: %w", param.ErrMalformedVariant)
	}
	info := node.Info()
	var cond Condition
	var out []Element
	if r.ctx.Mode == ModeConfig && !info.Required && guarded(info.Kind) {
		id := naming.ToggleID(info.Name)
		out = append(out, attributeElement(&Attribute{
			Name:         id,
			DisplayName:  "Enable " + r.label(info.Leaf()),
			InputType:    InputBoolean,
			DefaultValue: "false",
			Required:     "false",
			HelpTip:      fmt.Sprintf("Enable %s configuration", r.label(info.Leaf())),
			Synthetic:    true,
		}))
		cond = Clause(id, "true")
	}
	elements, err := r.node(node, cond, "")
	if err != nil {
		return nil, err
	}
	return append(out, elements...), nil
}

func guarded(kind param.Kind) bool {
	switch kind {
	case param.KindRecord, param.KindMap, param.KindArray:
		return true
	}
	return false
}

// node renders one node. inherited is the merged condition of all ancestors;
// display overrides the label derived from the value name.
func (r *renderer) node(node param.Node, inherited Condition, display string) ([]Element, error) {
	if node == nil {
		return nil, fmt.Errorf("form: nil node: %w", param.ErrMalformedVariant)
	}
	info := node.Info()
	cond := Merge(inherited, Condition(info.Condition))
	if display == "" {
		display = r.label(info.Leaf())
	}

	switch info.Kind {
	case param.KindRecord:
		rec, err := param.AsRecord(node)
		if err != nil {
			return nil, err
		}
		if r.ctx.Opaque {
			return []Element{attributeElement(r.attribute(info, param.KindJSON, display, cond))}, nil
		}
		return r.record(rec, cond)
	case param.KindUnion:
		union, err := param.AsUnion(node)
		if err != nil {
			return nil, err
		}
		return r.union(union, cond, display)
	case param.KindMap:
		m, err := param.AsMap(node)
		if err != nil {
			return nil, err
		}
		if !m.Table {
			return []Element{attributeElement(r.attribute(info, param.KindJSON, display, cond))}, nil
		}
		return []Element{tableElement(r.table(info, m.Elements, true, false, display, cond))}, nil
	case param.KindArray:
		a, err := param.AsArray(node)
		if err != nil {
			return nil, err
		}
		if !a.Table {
			return []Element{attributeElement(r.attribute(info, param.KindJSON, display, cond))}, nil
		}
		return []Element{tableElement(r.table(info, a.Elements, false, a.TwoD, display, cond))}, nil
	default:
		s, err := param.AsSimple(node)
		if err != nil {
			return nil, err
		}
		return []Element{attributeElement(r.attribute(&s.Header, s.Kind, display, cond))}, nil
	}
}

func (r *renderer) attribute(info *param.Header, kind param.Kind, display string, cond Condition) *Attribute {
	input, pattern := inputFor(kind, info.Required)
	attr := &Attribute{
		Name:            naming.Sanitize(info.Name),
		DisplayName:     display,
		InputType:       input,
		DefaultValue:    FormatDefault(info.Default),
		Required:        strconv.FormatBool(info.Required),
		HelpTip:         sanitizeHelp(info.Description),
		EnableCondition: cond,
	}
	if pattern != "" {
		attr.ValidateType = ValidateRegex
		attr.MatchPattern = pattern
	}
	return attr
}

// placed is an element tagged with the record group it belongs to. An empty
// group renders inline.
type placed struct {
	group   string
	title   string
	element Element
}

func (r *renderer) record(rec *param.Record, cond Condition) ([]Element, error) {
	var items []placed
	if err := r.collect(rec.Path, rec.Fields, cond, &items); err != nil {
		return nil, err
	}
	return groupElements(items), nil
}

// collect flattens record fields below root, tagging each element with the
// path of its immediate parent record.
func (r *renderer) collect(root string, fields []param.Node, cond Condition, items *[]placed) error {
	for _, field := range fields {
		if field == nil {
			return fmt.Errorf("form: %s: nil field: %w", root, param.ErrMalformedVariant)
		}
		info := field.Info()
		if info.Kind == param.KindRecord && !r.ctx.Opaque {
			rec, err := param.AsRecord(field)
			if err != nil {
				return err
			}
			if err := r.collect(root, rec.Fields, Merge(cond, Condition(rec.Condition)), items); err != nil {
				return err
			}
			continue
		}
		elements, err := r.node(field, cond, "")
		if err != nil {
			return err
		}
		group, title := r.groupOf(root, info.Name)
		for _, element := range elements {
			*items = append(*items, placed{group: group, title: title, element: element})
		}
	}
	return nil
}

func (r *renderer) groupOf(root, name string) (string, string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", ""
	}
	parent := name[:idx]
	if parent == root || !strings.HasPrefix(parent, root) {
		return "", ""
	}
	segment := parent
	if i := strings.LastIndex(parent, "."); i >= 0 {
		segment = parent[i+1:]
	}
	return parent, r.label(segment)
}

// groupElements keeps inline elements in place and clusters grouped ones at
// the position of their group's first element.
func groupElements(items []placed) []Element {
	out := make([]Element, 0, len(items))
	index := make(map[string]int)
	for _, item := range items {
		if item.group == "" {
			out = append(out, item.element)
			continue
		}
		if pos, ok := index[item.group]; ok {
			out[pos].Group.Elements = append(out[pos].Group.Elements, item.element)
			continue
		}
		index[item.group] = len(out)
		out = append(out, groupElement(&Group{Name: item.title, Elements: []Element{item.element}}))
	}
	return out
}

func (r *renderer) union(u *param.Union, cond Condition, display string) ([]Element, error) {
	memberDisplay := display
	if u.TypeDescriptor {
		memberDisplay = display + " Type Name"
	}
	if !u.Discriminated() {
		if len(u.Members) == 0 || u.Members[0] == nil {
			return nil, fmt.Errorf("form: %s: no members: %w", u.Name, param.ErrMalformedVariant)
		}
		return r.node(u.Members[0], cond, memberDisplay)
	}

	labels := u.Labels()
	combo := &Attribute{
		Name:            naming.DiscriminatorID(u.Name),
		DisplayName:     display + " Type",
		InputType:       InputCombo,
		Required:        strconv.FormatBool(u.Required),
		HelpTip:         sanitizeHelp(u.Description),
		ComboValues:     labels,
		EnableCondition: cond,
		Synthetic:       true,
	}
	if len(labels) > 0 {
		combo.DefaultValue = labels[0]
	}
	out := []Element{attributeElement(combo)}

	// Record members merge into one virtual record placed at the first
	// record member's position.
	var records []placed
	recordPos := -1
	for _, member := range u.Members {
		if member == nil {
			return nil, fmt.Errorf("form: %s: nil member: %w", u.Name, param.ErrMalformedVariant)
		}
		info := member.Info()
		if info.Kind == param.KindRecord && !r.ctx.Opaque {
			rec, err := param.AsRecord(member)
			if err != nil {
				return nil, err
			}
			if recordPos < 0 {
				recordPos = len(out)
				out = append(out, Element{})
			}
			if err := r.collect(rec.Path, rec.Fields, Merge(cond, Condition(rec.Condition)), &records); err != nil {
				return nil, err
			}
			continue
		}
		elements, err := r.node(member, cond, memberDisplay)
		if err != nil {
			return nil, err
		}
		out = append(out, elements...)
	}

	if recordPos >= 0 {
		merged := groupElements(records)
		spliced := make([]Element, 0, len(out)-1+len(merged))
		spliced = append(spliced, out[:recordPos]...)
		spliced = append(spliced, merged...)
		spliced = append(spliced, out[recordPos+1:]...)
		out = spliced
	}
	return out, nil
}

// FormatDefault renders a default value as attribute text.
func FormatDefault(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
