package param

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

var (
	tString = typedesc.NewPrimitive(typedesc.PrimitiveString)
	tInt    = typedesc.NewPrimitive(typedesc.PrimitiveInt)
)

func classify(t *testing.T, name string, typ typedesc.Descriptor, required bool) Node {
	t.Helper()
	node, err := New(Options{}).Classify(Spec{Name: name, Type: typ, Required: required}, nil, NewWarningCollector())
	if err != nil {
		t.Fatalf("classify %s: %v", name, err)
	}
	return node
}

func TestClassifyFlatRecord(t *testing.T) {
	config := typedesc.NewRecord("Config",
		typedesc.Field{Name: "host", Type: tString},
		typedesc.Field{Name: "port", Type: tInt},
	)

	got := classify(t, "config", config, true)
	want := &Record{
		Header: Header{Name: "config", Kind: KindRecord, TypeName: "Config", Required: true},
		Path:   "config",
		Fields: []Node{
			&Simple{Header: Header{Name: "config.host", Kind: KindString, TypeName: "string", Required: true}},
			&Simple{Header: Header{Name: "config.port", Kind: KindInt, TypeName: "int", Required: true}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyNestedRecordUsesQualifiedNames(t *testing.T) {
	auth := typedesc.NewRecord("AuthConfig", typedesc.Field{Name: "token", Type: tString, Doc: "API token"})
	config := typedesc.NewRecord("Config", typedesc.Field{Name: "auth", Type: auth})

	got := classify(t, "config", config, true).(*Record)
	nested, ok := got.Fields[0].(*Record)
	if !ok {
		t.Fatalf("expected nested record, got %T", got.Fields[0])
	}
	if nested.Path != "config.auth" || nested.TypeName != "AuthConfig" {
		t.Fatalf("unexpected nested record header: %+v", nested.Header)
	}
	leaf := nested.Fields[0].Info()
	if leaf.Name != "config.auth.token" || leaf.Description != "API token" {
		t.Fatalf("unexpected leaf: %+v", leaf)
	}
}

func TestClassifyRecordNamePrefersAlias(t *testing.T) {
	config := typedesc.NewRecord("Config", typedesc.Field{Name: "host", Type: tString})
	if got := classify(t, "cfg", config.Aliased("Settings"), true).Info().TypeName; got != "Settings" {
		t.Fatalf("expected alias name, got %q", got)
	}
	anonymous := typedesc.NewRecord("", typedesc.Field{Name: "host", Type: tString})
	if got := classify(t, "server.cfg", anonymous, true).Info().TypeName; got != "cfg" {
		t.Fatalf("expected param name fallback, got %q", got)
	}
}

func TestClassifyUnionKeepsMembers(t *testing.T) {
	got := classify(t, "value", typedesc.NewUnion(tString, tInt), true)
	want := &Union{
		Header: Header{Name: "value", Kind: KindUnion, Required: true},
		Members: []Node{
			&Simple{Header: Header{Name: "value.string", Kind: KindString, TypeName: "string", Required: true, Condition: `[{"valueDataType":"string"}]`}},
			&Simple{Header: Header{Name: "value.int", Kind: KindInt, TypeName: "int", Required: true, Condition: `[{"valueDataType":"int"}]`}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("union mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyUnionRecordMembersShareScope(t *testing.T) {
	cat := typedesc.NewRecord("Cat", typedesc.Field{Name: "name", Type: tString})
	dog := typedesc.NewRecord("Dog", typedesc.Field{Name: "breed", Type: tString})

	got := classify(t, "pet", typedesc.NewUnion(cat, dog), true).(*Union)
	if diff := cmp.Diff([]string{"Cat", "Dog"}, got.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	member := got.Members[1].(*Record)
	if member.Path != "pet" || member.Condition != `[{"petDataType":"Dog"}]` {
		t.Fatalf("unexpected member header: %+v", member.Header)
	}
	if name := member.Fields[0].Info().Name; name != "pet.breed" {
		t.Fatalf("expected pet.breed, got %q", name)
	}
}

func TestClassifyUnionSimplification(t *testing.T) {
	config := typedesc.NewRecord("Config",
		typedesc.Field{Name: "host", Type: tString},
		typedesc.Field{Name: "port", Type: tInt},
	)
	tests := []struct {
		name string
		typ  typedesc.Descriptor
	}{
		{"string", tString},
		{"record", config},
		{"array", typedesc.NewArray(tInt)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := classify(t, "value", tt.typ, false)

			nilable := classify(t, "value", typedesc.NewUnion(tt.typ.(*typedesc.Type), typedesc.Nil()), true)
			if diff := cmp.Diff(plain, nilable); diff != "" {
				t.Fatalf("T|() differs from optional T (-want +got):\n%s", diff)
			}

			plainRequired := classify(t, "value", tt.typ, true)
			dup := classify(t, "value", typedesc.NewUnion(tt.typ.(*typedesc.Type), tt.typ.(*typedesc.Type)), true)
			if diff := cmp.Diff(plainRequired, dup); diff != "" {
				t.Fatalf("T|T differs from T (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyUnionDeduplicatesLabels(t *testing.T) {
	aliasOfString := typedesc.NewPrimitive(typedesc.PrimitiveString).Aliased("Email")
	got := classify(t, "value", typedesc.NewUnion(tString, aliasOfString, tInt), true).(*Union)
	if diff := cmp.Diff([]string{"string", "int"}, got.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyEmptyUnionIsAbsent(t *testing.T) {
	fn := typedesc.Simple(typedesc.KindFunction)
	if got := classify(t, "value", typedesc.NewUnion(fn, typedesc.Nil()), true); got != nil {
		t.Fatalf("expected absent, got %#v", got)
	}
}

func TestClassifyUnrepresentableKinds(t *testing.T) {
	for _, kind := range []typedesc.Kind{typedesc.KindAny, typedesc.KindFunction, typedesc.KindNil} {
		if got := classify(t, "value", typedesc.Simple(kind), true); got != nil {
			t.Fatalf("%s: expected absent, got %#v", kind, got)
		}
	}
	got := classify(t, "value", typedesc.Simple(typedesc.KindAnydata), true)
	if got.Info().Kind != KindJSON {
		t.Fatalf("anydata should classify as json, got %s", got.Info().Kind)
	}
}

func TestClassifyRecordSkipsUnsupportedFields(t *testing.T) {
	rec := typedesc.NewRecord("Client",
		typedesc.Field{Name: "callback", Type: typedesc.Simple(typedesc.KindFunction)},
		typedesc.Field{Name: "url", Type: tString},
	)
	budget := NewBudget(10)
	warnings := NewWarningCollector()
	node, err := New(Options{}).Classify(Spec{Name: "client", Type: rec, Required: true}, budget, warnings)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	fields := node.(*Record).Fields
	if len(fields) != 1 || fields[0].Info().Name != "client.url" {
		t.Fatalf("unexpected fields: %#v", fields)
	}
	if budget.Remaining() != 9 {
		t.Fatalf("expected skipped field to be refunded, remaining %d", budget.Remaining())
	}
	if len(warnings.Warnings) != 1 || warnings.Warnings[0].Kind != WarningUnsupportedType {
		t.Fatalf("unexpected warnings: %#v", warnings.Warnings)
	}
}

func TestClassifyOptionalParentForcesOptionalChildren(t *testing.T) {
	rec := typedesc.NewRecord("Config", typedesc.Field{Name: "host", Type: tString})
	got := classify(t, "config", typedesc.Optional(rec), true).(*Record)
	if got.Required || got.Fields[0].Info().Required {
		t.Fatalf("expected optional record and field, got %+v / %+v", got.Header, got.Fields[0].Info())
	}
}

func TestClassifyBudgetBoundsSelfReference(t *testing.T) {
	node := &typedesc.Type{TypeKind: typedesc.KindRecord, TypeName: "Node"}
	node.FieldList = []typedesc.Field{
		{Name: "value", Type: tInt},
		{Name: "next", Type: typedesc.Optional(node)},
		{Name: "children", Type: typedesc.NewArray(node)},
	}

	for _, size := range []int{1, 5, 17, 100} {
		budget := NewBudget(size)
		got, err := New(Options{}).Classify(Spec{Name: "head", Type: node, Required: true}, budget, nil)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if fields := countFields(got); fields > size {
			t.Fatalf("budget %d: expanded %d fields", size, fields)
		}
		if budget.Remaining() < 0 {
			t.Fatalf("budget %d went negative", size)
		}
	}
}

func TestClassifyExhaustedRecordIsOpaque(t *testing.T) {
	rec := typedesc.NewRecord("Config", typedesc.Field{Name: "host", Type: tString})
	budget := NewBudget(1)
	budget.Reserve()
	got, err := New(Options{}).Classify(Spec{Name: "config", Type: rec, Required: true}, budget, nil)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	want := &Simple{Header: Header{Name: "config", Kind: KindJSON, TypeName: "Config", Required: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func countFields(node Node) int {
	total := 0
	switch n := node.(type) {
	case *Record:
		for _, field := range n.Fields {
			total += 1 + countFields(field)
		}
	case *Map:
		total += len(n.Fields)
	case *Array:
		total += len(n.Fields)
	case *Union:
		for _, member := range n.Members {
			total += countFields(member)
		}
	}
	return total
}

func TestClassifyEmptyNameFails(t *testing.T) {
	if _, err := New(Options{}).Classify(Spec{Type: tString}, nil, nil); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestClassifyRecordWithoutRenderableFieldsIsOpaque(t *testing.T) {
	hooks := typedesc.NewRecord("Hooks", typedesc.Field{Name: "cb", Type: typedesc.Simple(typedesc.KindFunction)})
	warnings := NewWarningCollector()
	got, err := New(Options{}).Classify(Spec{Name: "hooks", Type: hooks, Required: true}, nil, warnings)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	want := &Simple{Header: Header{Name: "hooks", Kind: KindJSON, TypeName: "Hooks", Required: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if len(warnings.Warnings) != 1 || warnings.Warnings[0].Path != "hooks.cb" {
		t.Fatalf("unexpected warnings: %#v", warnings.Warnings)
	}
}

func TestClassifySingleSurvivingUnionMemberHasNoCondition(t *testing.T) {
	inner := typedesc.NewUnion(tString, tInt).Aliased("Inner")
	got := classify(t, "v", typedesc.NewUnion(inner, typedesc.Nil()), true).(*Union)
	if got.Required || got.Discriminated() || len(got.Members) != 1 {
		t.Fatalf("unexpected outer union: %+v", got)
	}
	member := got.Members[0].(*Union)
	if member.Condition != "" {
		t.Fatalf("sole member should inherit the parent condition, got %s", member.Condition)
	}
	if !member.Discriminated() || member.Name != "v.Inner" {
		t.Fatalf("unexpected inner union: %+v", member.Header)
	}
	if cond := member.Members[1].Info().Condition; cond != `[{"v_InnerDataType":"int"}]` {
		t.Fatalf("inner member condition = %s", cond)
	}
}
