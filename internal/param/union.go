package param

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// maxRepresentDepth bounds representability checks through anonymous
// unions/collections.
const maxRepresentDepth = 32

type unionMember struct {
	label string
	desc  typedesc.Descriptor
}

// unionMembers drops nil members, unrepresentable members and duplicate
// labels, reporting whether a nil member was present.
func (w *walker) unionMembers(name string, d typedesc.Descriptor) ([]unionMember, bool) {
	var (
		members []unionMember
		hasNil  bool
		seen    = make(map[string]struct{})
	)
	for _, member := range d.Members() {
		if member == nil || member.Kind() == typedesc.KindNil {
			hasNil = true
			continue
		}
		if !representable(member, 0) {
			w.warnings.Add(name, WarningUnsupportedType, fmt.Sprintf("union member %s is not supported, member skipped", typedesc.FormatType(member)))
			continue
		}
		label := memberLabel(member)
		if _, dup := seen[label]; dup {
			w.warnings.Add(name, WarningDuplicateMember, fmt.Sprintf("union member %q repeated, keeping the first", label))
			continue
		}
		seen[label] = struct{}{}
		members = append(members, unionMember{label: label, desc: member})
	}
	return members, hasNil
}

func (w *walker) union(name string, d typedesc.Descriptor, info fieldInfo) Node {
	members, hasNil := w.unionMembers(name, d)
	if hasNil {
		info.required = false
	}
	if len(members) == 0 {
		w.warnings.Add(name, WarningEmptyUnion, "union has no representable members")
		return nil
	}
	if len(members) == 1 && members[0].desc.Kind() != typedesc.KindUnion {
		return w.classify(name, members[0].desc, info)
	}

	out := &Union{Header: w.header(name, KindUnion, strings.TrimSpace(d.Name()), info)}
	mark := w.budget.Mark()
	for _, member := range members {
		memberInfo := fieldInfo{
			required:  info.required,
			condition: DiscriminatorCondition(name, member.label),
		}
		memberName := JoinPath(name, LabelSegment(member.label))
		// Record members flatten their fields under the union's own name.
		if member.desc.Kind() == typedesc.KindRecord && len(member.desc.Fields()) > 0 && !w.budget.Exhausted() {
			memberName = name
		}
		node := w.classify(memberName, member.desc, memberInfo)
		if node == nil {
			continue
		}
		node.Info().TypeName = member.label
		out.Members = append(out.Members, node)
	}
	if len(out.Members) == 0 {
		w.budget.Restore(mark)
		return nil
	}
	if !out.Discriminated() {
		out.Members[0].Info().Condition = ""
	}
	return out
}

func (w *walker) typeDescUnion(name string, d typedesc.Descriptor, info fieldInfo) Node {
	members, hasNil := w.unionMembers(name, d)
	if hasNil {
		info.required = false
	}
	if len(members) == 0 {
		w.warnings.Add(name, WarningEmptyUnion, "type descriptor union has no representable members")
		return nil
	}
	if len(members) == 1 && members[0].desc.Kind() != typedesc.KindUnion {
		return w.placeholder(name, members[0].label, info)
	}
	out := &Union{
		Header:         w.header(name, KindUnion, strings.TrimSpace(d.Name()), info),
		TypeDescriptor: true,
	}
	for _, member := range members {
		out.Members = append(out.Members, w.placeholder(JoinPath(name, LabelSegment(member.label)), member.label, fieldInfo{
			required:  info.required,
			condition: DiscriminatorCondition(name, member.label),
		}))
	}
	if !out.Discriminated() {
		out.Members[0].Info().Condition = ""
	}
	return out
}

// DiscriminatorCondition returns the visibility condition selecting label on
// the discriminator of the union stored at name.
func DiscriminatorCondition(name, label string) string {
	clause := map[string]string{naming.DiscriminatorID(name): label}
	raw, err := json.Marshal([]map[string]string{clause})
	if err != nil {
		return ""
	}
	return string(raw)
}

// memberLabel is the display label of a union member: the declared record or
// union name, or the primitive kind name.
func memberLabel(d typedesc.Descriptor) string {
	switch d.Kind() {
	case typedesc.KindPrimitive:
		return string(d.Primitive())
	case typedesc.KindRecord:
		if n := firstNonEmpty(d.Name(), d.UnderlyingName()); n != "" {
			return n
		}
		return string(typedesc.KindRecord)
	case typedesc.KindUnion:
		if n := firstNonEmpty(d.Name(), d.UnderlyingName()); n != "" {
			return n
		}
		return string(typedesc.KindUnion)
	case typedesc.KindArray:
		if n := strings.TrimSpace(d.Name()); n != "" {
			return n
		}
		if d.Elem() == nil {
			return "array"
		}
		return memberLabel(d.Elem()) + "[]"
	case typedesc.KindMap:
		if n := strings.TrimSpace(d.Name()); n != "" {
			return n
		}
		if d.Elem() == nil {
			return "map"
		}
		return "map<" + memberLabel(d.Elem()) + ">"
	case typedesc.KindTypeDesc:
		return "typedesc"
	default:
		return string(d.Kind())
	}
}

// LabelSegment turns a member label into a value-name segment: "string[]"
// becomes "stringArray" and "map<int>" becomes "intMap".
func LabelSegment(label string) string {
	label = strings.TrimSpace(label)
	for strings.HasPrefix(label, "map<") && strings.HasSuffix(label, ">") {
		label = label[len("map<"):len(label)-1] + "Map"
	}
	label = strings.ReplaceAll(label, "[]", "Array")
	var b strings.Builder
	for _, r := range label {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "value"
	}
	return b.String()
}

// representable reports whether classification of d can yield a node.
func representable(d typedesc.Descriptor, depth int) bool {
	if d == nil || depth > maxRepresentDepth {
		return false
	}
	switch d.Kind() {
	case typedesc.KindPrimitive, typedesc.KindAnydata, typedesc.KindRecord:
		return true
	case typedesc.KindMap, typedesc.KindArray:
		return representable(d.Elem(), depth+1)
	case typedesc.KindUnion:
		for _, member := range d.Members() {
			if member != nil && member.Kind() != typedesc.KindNil && representable(member, depth+1) {
				return true
			}
		}
		return false
	case typedesc.KindTypeDesc:
		constraint := d.Elem()
		if constraint == nil {
			return false
		}
		switch constraint.Kind() {
		case typedesc.KindAny, typedesc.KindFunction, typedesc.KindNil:
			return false
		case typedesc.KindUnion:
			return representable(constraint, depth+1)
		}
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
