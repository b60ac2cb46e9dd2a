package param

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

func TestClassifyScalarArrayIsTable(t *testing.T) {
	got := classify(t, "items", typedesc.NewArray(tString), true)
	want := &Array{
		Header:   Header{Name: "items", Kind: KindArray, Required: true},
		Elements: Elements{ElemKind: KindString, Table: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("array mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyMapOfRecordExpandsColumns(t *testing.T) {
	header := typedesc.NewRecord("Header",
		typedesc.Field{Name: "value", Type: tString},
		typedesc.Field{Name: "ttl", Type: typedesc.Optional(tInt)},
		typedesc.Field{Name: "meta", Type: typedesc.NewMap(tString)},
		typedesc.Field{Name: "hook", Type: typedesc.Simple(typedesc.KindFunction)},
	)
	got := classify(t, "headers", typedesc.NewMap(header), true)
	want := &Map{
		Header: Header{Name: "headers", Kind: KindMap, Required: true},
		Elements: Elements{
			ElemKind: KindRecord,
			Table:    true,
			Fields: []Node{
				&Simple{Header: Header{Name: "value", Kind: KindString, TypeName: "string", Required: true}},
				&Simple{Header: Header{Name: "ttl", Kind: KindInt, TypeName: "int|()", Required: false}},
				&Simple{Header: Header{Name: "meta", Kind: KindJSON, TypeName: "map<string>", Required: true}},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyCollectionTableFlags(t *testing.T) {
	empty := typedesc.NewRecord("Empty")
	tests := []struct {
		name      string
		typ       *typedesc.Type
		wantTable bool
		check     func(t *testing.T, node Node)
	}{
		{
			name:      "two dimensional",
			typ:       typedesc.NewArray(typedesc.NewArray(tInt)),
			wantTable: true,
			check: func(t *testing.T, node Node) {
				arr := node.(*Array)
				if !arr.TwoD || arr.InnerKind != KindInt {
					t.Fatalf("expected 2-D int array, got %+v", arr)
				}
			},
		},
		{
			name:      "union elements",
			typ:       typedesc.NewArray(typedesc.NewUnion(tString, tInt)),
			wantTable: true,
			check: func(t *testing.T, node Node) {
				arr := node.(*Array)
				if !arr.UnionArray || !cmp.Equal(arr.UnionTypes, []string{"string", "int"}) {
					t.Fatalf("expected union array, got %+v", arr)
				}
			},
		},
		{name: "nested map", typ: typedesc.NewMap(typedesc.NewMap(tString)), wantTable: false},
		{name: "zero field record", typ: typedesc.NewArray(empty), wantTable: false},
		{name: "map of arrays", typ: typedesc.NewMap(typedesc.NewArray(tInt)), wantTable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := classify(t, "value", tt.typ, true)
			var table bool
			switch n := node.(type) {
			case *Array:
				table = n.Table
			case *Map:
				table = n.Table
			default:
				t.Fatalf("unexpected node %T", node)
			}
			if table != tt.wantTable {
				t.Fatalf("table = %v, want %v", table, tt.wantTable)
			}
			if tt.check != nil {
				tt.check(t, node)
			}
		})
	}
}

func TestClassifyCollectionOfUnsupportedIsAbsent(t *testing.T) {
	if got := classify(t, "callbacks", typedesc.NewArray(typedesc.Simple(typedesc.KindFunction)), true); got != nil {
		t.Fatalf("expected absent, got %#v", got)
	}
}

func TestClassifyTypeDescriptor(t *testing.T) {
	person := typedesc.NewRecord("Person", typedesc.Field{Name: "name", Type: tString})
	animal := typedesc.NewRecord("Animal", typedesc.Field{Name: "kind", Type: tString})

	got := classify(t, "target", typedesc.NewTypeDesc(person), true)
	want := &Simple{Header: Header{Name: "target", Kind: KindString, TypeName: "Person", Required: true, Default: "Person"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record typedesc mismatch (-want +got):\n%s", diff)
	}

	union := classify(t, "target", typedesc.NewTypeDesc(typedesc.NewUnion(person, animal)), true).(*Union)
	if !union.TypeDescriptor {
		t.Fatalf("expected type descriptor union")
	}
	first := union.Members[0].Info()
	if first.Name != "target.Person" || first.Default != "Person" || first.Kind != KindString {
		t.Fatalf("unexpected placeholder member: %+v", first)
	}

	if got := classify(t, "target", typedesc.NewTypeDesc(typedesc.Simple(typedesc.KindAny)), true); got != nil {
		t.Fatalf("expected absent for open typedesc, got %#v", got)
	}
	if got := classify(t, "target", typedesc.NewTypeDesc(typedesc.Simple(typedesc.KindAnydata)), true); got.Info().Kind != KindJSON {
		t.Fatalf("expected json for anydata typedesc, got %#v", got)
	}
}

func TestLabelSegment(t *testing.T) {
	tests := map[string]string{
		"string":        "string",
		"string[]":      "stringArray",
		"map<int>":      "intMap",
		"map<string[]>": "stringArrayMap",
		"Cat":           "Cat",
		"<>":            "value",
	}
	for in, want := range tests {
		if got := LabelSegment(in); got != want {
			t.Fatalf("LabelSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassifyOptionalCollectionForcesOptionalColumns(t *testing.T) {
	row := typedesc.NewRecord("Row", typedesc.Field{Name: "a", Type: tString})
	tests := []struct {
		name string
		typ  *typedesc.Type
	}{
		{"array", typedesc.NewArray(row)},
		{"map", typedesc.NewMap(row)},
		{"nilable array", typedesc.Optional(typedesc.NewArray(row))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			optional := classify(t, "rows", tt.typ, false)
			var columns []Node
			switch n := optional.(type) {
			case *Array:
				columns = n.Elements.Fields
			case *Map:
				columns = n.Elements.Fields
			default:
				t.Fatalf("unexpected node %T", optional)
			}
			if optional.Info().Required || len(columns) != 1 || columns[0].Info().Required {
				t.Fatalf("optional collection produced a required column: %+v", columns)
			}
		})
	}

	required := classify(t, "rows", typedesc.NewArray(row), true).(*Array)
	if !required.Elements.Fields[0].Info().Required {
		t.Fatalf("required collection should keep required columns")
	}
}
