package param

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// ErrEmptyName is returned when a parameter that must be addressable has no
// name.
var ErrEmptyName = errors.New("param: parameter name is required")

// Classifier turns type descriptors into Parameter Node trees.
type Classifier struct {
	opts Options
}

// New creates a Classifier with the supplied options.
func New(options Options) *Classifier {
	opts := defaultOptions()
	if options.Budget > 0 {
		opts.Budget = options.Budget
	}
	return &Classifier{opts: opts}
}

// Spec describes the value being classified.
type Spec struct {
	// Name is the qualified dotted value name.
	Name        string
	Type        typedesc.Descriptor
	Required    bool
	Default     any
	Description string
}

// Classify builds the node for one top-level parameter using budget. A nil
// node means the type has no renderable form. A nil budget allocates a fresh
// one sized from the classifier options.
func (c *Classifier) Classify(spec Spec, budget *Budget, warnings *WarningCollector) (Node, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, ErrEmptyName
	}
	if budget == nil {
		budget = NewBudget(c.opts.Budget)
	}
	w := &walker{budget: budget, warnings: warnings}
	return w.classify(spec.Name, spec.Type, fieldInfo{
		required:    spec.Required,
		def:         spec.Default,
		description: spec.Description,
	}), nil
}

// NewBudget returns a budget sized from the classifier options.
func (c *Classifier) NewBudget() *Budget {
	return NewBudget(c.opts.Budget)
}

type fieldInfo struct {
	required    bool
	def         any
	description string
	condition   string
}

type walker struct {
	budget   *Budget
	warnings *WarningCollector
}

func (w *walker) classify(name string, d typedesc.Descriptor, info fieldInfo) Node {
	if d == nil {
		return nil
	}
	switch d.Kind() {
	case typedesc.KindPrimitive:
		return w.simple(name, Kind(d.Primitive()), string(d.Primitive()), info)
	case typedesc.KindAnydata:
		return w.simple(name, KindJSON, string(typedesc.KindAnydata), info)
	case typedesc.KindRecord:
		return w.record(name, d, info)
	case typedesc.KindMap:
		return w.mapNode(name, d, info)
	case typedesc.KindArray:
		return w.array(name, d, info)
	case typedesc.KindUnion:
		return w.union(name, d, info)
	case typedesc.KindTypeDesc:
		return w.typeDesc(name, d, info)
	default:
		// any, function and bare nil have no renderable form.
		return nil
	}
}

func (w *walker) header(name string, kind Kind, typeName string, info fieldInfo) Header {
	return Header{
		Name:        name,
		Kind:        kind,
		TypeName:    typeName,
		Required:    info.required,
		Description: info.description,
		Default:     info.def,
		Condition:   info.condition,
	}
}

func (w *walker) simple(name string, kind Kind, typeName string, info fieldInfo) Node {
	return &Simple{Header: w.header(name, kind, typeName, info)}
}

// recordName prefers the declared (possibly aliased) name, then the
// underlying name, then the value name's last segment.
func recordName(d typedesc.Descriptor, name string) string {
	if n := strings.TrimSpace(d.Name()); n != "" {
		return n
	}
	if n := strings.TrimSpace(d.UnderlyingName()); n != "" {
		return n
	}
	h := Header{Name: name}
	return h.Leaf()
}

func (w *walker) record(name string, d typedesc.Descriptor, info fieldInfo) Node {
	typeName := recordName(d, name)
	fields := d.Fields()
	if len(fields) == 0 || w.budget.Exhausted() {
		if len(fields) > 0 {
			w.warnings.Add(name, WarningBudgetExhausted, fmt.Sprintf("record %s left unexpanded", typeName))
		}
		return w.simple(name, KindJSON, typeName, info)
	}

	rec := &Record{
		Header: w.header(name, KindRecord, typeName, info),
		Path:   name,
	}
	for _, field := range fields {
		childName := JoinPath(name, field.Name)
		mark := w.budget.Mark()
		if !w.budget.Reserve() {
			w.warnings.Add(childName, WarningBudgetExhausted, "expansion budget exhausted, field dropped")
			continue
		}
		child := w.classify(childName, field.Type, fieldInfo{
			required:    info.required && field.Required(),
			def:         field.Default,
			description: field.Doc,
		})
		if child == nil {
			w.budget.Restore(mark)
			w.warnings.Add(childName, WarningUnsupportedType, fmt.Sprintf("field type %s is not supported, field skipped", typedesc.FormatType(field.Type)))
			continue
		}
		rec.Fields = append(rec.Fields, child)
	}
	if len(rec.Fields) == 0 {
		return w.simple(name, KindJSON, typeName, info)
	}
	return rec
}

func (w *walker) typeDesc(name string, d typedesc.Descriptor, info fieldInfo) Node {
	constraint := d.Elem()
	if constraint == nil {
		return nil
	}
	switch constraint.Kind() {
	case typedesc.KindAny, typedesc.KindFunction, typedesc.KindNil:
		return nil
	case typedesc.KindAnydata:
		return w.simple(name, KindJSON, string(typedesc.KindAnydata), info)
	case typedesc.KindUnion:
		return w.typeDescUnion(name, constraint, info)
	}
	label := memberLabel(constraint)
	if constraint.Kind() == typedesc.KindRecord {
		label = recordName(constraint, name)
	}
	return w.placeholder(name, label, info)
}

func (w *walker) placeholder(name, label string, info fieldInfo) Node {
	if info.def == nil {
		info.def = label
	}
	return w.simple(name, KindString, label, info)
}
