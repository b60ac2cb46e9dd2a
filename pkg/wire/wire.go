package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/param"
)

// LineContinuation separates successive declarations.
const LineContinuation = " \\\n"

// Key suffixes used by the wire format.
const (
	keyParam       = "param"
	keyParamType   = "paramType"
	keyRecordName  = "_recordName"
	keyDataType    = "dataType"
	keyUnionMember = "unionMember"
)

// Entry is one key=value declaration.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Declarations is the ordered output of Render.
type Declarations []Entry

// String joins the declarations with LineContinuation. The first entry has no
// leading separator.
func (d Declarations) String() string {
	var b strings.Builder
	for i, entry := range d {
		if i > 0 {
			b.WriteString(LineContinuation)
		}
		b.WriteString(entry.Key)
		b.WriteByte('=')
		b.WriteString(entry.Value)
	}
	return b.String()
}

// Lookup returns the value declared under key.
func (d Declarations) Lookup(key string) (string, bool) {
	for _, entry := range d {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// ValueNames lists the identifiers of every leaf declaration, skipping record
// and union headers, in emission order.
func (d Declarations) ValueNames() []string {
	types := make(map[string]string)
	for _, entry := range d {
		if prefix, idx, ok := splitIndexed(entry.Key, keyParamType); ok {
			types[prefix+keyParam+idx] = entry.Value
		}
	}
	var names []string
	for _, entry := range d {
		if _, _, ok := splitIndexed(entry.Key, keyParam); !ok {
			continue
		}
		switch param.Kind(types[entry.Key]) {
		case param.KindRecord, param.KindUnion:
			continue
		}
		names = append(names, entry.Value)
	}
	return names
}

// splitIndexed matches keys shaped "<scope_><word><digits>".
func splitIndexed(key, word string) (string, string, bool) {
	end := len(key)
	start := end
	for start > 0 && key[start-1] >= '0' && key[start-1] <= '9' {
		start--
	}
	if start == end {
		return "", "", false
	}
	head := key[:start]
	if !strings.HasSuffix(head, word) {
		return "", "", false
	}
	prefix := strings.TrimSuffix(head, word)
	if prefix != "" && !strings.HasSuffix(prefix, "_") {
		return "", "", false
	}
	return prefix, key[start:], true
}

// Render walks params in order and emits their indexed declarations.
func Render(params []param.Node) (Declarations, error) {
	w := &writer{}
	for idx, node := range params {
		if err := w.topLevel(idx, node); err != nil {
			return nil, err
		}
	}
	return w.out, nil
}

type writer struct {
	out Declarations
}

func (w *writer) emit(key, value string) {
	w.out = append(w.out, Entry{Key: key, Value: value})
}

func scoped(scope, key string, idx int) string {
	if scope == "" {
		return key + strconv.Itoa(idx)
	}
	return scope + "_" + key + strconv.Itoa(idx)
}

// header emits the value and type declarations shared by every node.
func (w *writer) header(scope string, idx int, node param.Node) {
	info := node.Info()
	w.emit(scoped(scope, keyParam, idx), naming.Sanitize(info.Name))
	w.emit(scoped(scope, keyParamType, idx), string(info.Kind))
}

func (w *writer) topLevel(idx int, node param.Node) error {
	if node == nil {
		return fmt.Errorf("wire: parameter %d: %w", idx, param.ErrMalformedVariant)
	}
	info := node.Info()
	switch info.Kind {
	case param.KindRecord:
		rec, err := param.AsRecord(node)
		if err != nil {
			return err
		}
		w.header("", idx, rec)
		w.emit(scoped("", keyParam, idx)+keyRecordName, rec.TypeName)
		s := &scope{name: naming.Sanitize(rec.Name)}
		return w.fields(s, rec.Fields, "")
	case param.KindUnion:
		union, err := param.AsUnion(node)
		if err != nil {
			return err
		}
		w.header("", idx, union)
		if union.Discriminated() {
			w.emit(scoped("", keyDataType, idx), naming.DiscriminatorID(union.Name))
		}
		s := &scope{name: naming.Sanitize(union.Name)}
		return w.members(s, union, "")
	default:
		if err := checkLeaf(node); err != nil {
			return err
		}
		w.header("", idx, node)
		return nil
	}
}

// scope is a flattened record/parameter namespace with its own counter.
type scope struct {
	name string
	next int
}

func (s *scope) take() int {
	idx := s.next
	s.next++
	return idx
}

// fields flattens nodes into s. member tags every declaration with the union
// arm it belongs to.
func (w *writer) fields(s *scope, nodes []param.Node, member string) error {
	for _, node := range nodes {
		if err := w.field(s, node, member); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) field(s *scope, node param.Node, member string) error {
	if node == nil {
		return fmt.Errorf("wire: %s: %w", s.name, param.ErrMalformedVariant)
	}
	switch node.Info().Kind {
	case param.KindRecord:
		rec, err := param.AsRecord(node)
		if err != nil {
			return err
		}
		// Nested records continue the enclosing counter without a marker.
		return w.fields(s, rec.Fields, member)
	case param.KindUnion:
		union, err := param.AsUnion(node)
		if err != nil {
			return err
		}
		idx := s.take()
		w.header(s.name, idx, union)
		if union.Discriminated() {
			w.emit(scoped(s.name, keyDataType, idx), naming.DiscriminatorID(union.Name))
		}
		if member != "" {
			w.emit(scoped(s.name, keyUnionMember, idx), member)
		}
		return w.members(s, union, member)
	default:
		if err := checkLeaf(node); err != nil {
			return err
		}
		idx := s.take()
		w.header(s.name, idx, node)
		if member != "" {
			w.emit(scoped(s.name, keyUnionMember, idx), member)
		}
		return nil
	}
}

// members flattens each union arm into the owning scope. The sole arm of an
// undiscriminated union keeps the enclosing arm's tag.
func (w *writer) members(s *scope, union *param.Union, outer string) error {
	for _, member := range union.Members {
		if member == nil {
			return fmt.Errorf("wire: %s: %w", union.Name, param.ErrMalformedVariant)
		}
		label := member.Info().TypeName
		if !union.Discriminated() {
			label = outer
		}
		if err := w.field(s, member, label); err != nil {
			return err
		}
	}
	return nil
}

func checkLeaf(node param.Node) error {
	switch node.Info().Kind {
	case param.KindMap:
		_, err := param.AsMap(node)
		return err
	case param.KindArray:
		_, err := param.AsArray(node)
		return err
	default:
		_, err := param.AsSimple(node)
		return err
	}
}
