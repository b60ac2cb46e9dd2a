package visibility_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/form"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
	"github.com/goliatone/go-paramgen/pkg/visibility"
)

func configSchema(t *testing.T) form.Schema {
	t.Helper()
	str := typedesc.NewPrimitive(typedesc.PrimitiveString)
	basic := typedesc.NewRecord("Basic", typedesc.Field{Name: "user", Type: str})
	token := typedesc.NewRecord("Token", typedesc.Field{Name: "token", Type: str})
	config := typedesc.NewRecord("Config", typedesc.Field{Name: "auth", Type: typedesc.NewUnion(basic, token)})

	result, err := param.NewClassifier().ClassifyOperation(typedesc.Operation{
		Name: "init",
		Kind: typedesc.OperationInit,
		Params: []typedesc.Param{
			{Name: "url", Type: str},
			{Name: "config", Type: config, HasDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	schema, err := form.Render(result.Params, form.Context{Mode: form.ModeConfig})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(schema.Elements) != 5 {
		t.Fatalf("expected 5 elements, got %d", len(schema.Elements))
	}
	return schema
}

func names(schema form.Schema, idx ...int) []string {
	var out []string
	for _, i := range idx {
		out = append(out, schema.Elements[i].Attribute.Name)
	}
	return out
}

func TestEnabledUsesDefaults(t *testing.T) {
	schema := configSchema(t)

	got, err := visibility.Enabled(schema, nil, nil)
	if err != nil {
		t.Fatalf("enabled: %v", err)
	}
	if diff := cmp.Diff(names(schema, 0, 1), got); diff != "" {
		t.Fatalf("enabled mismatch (-want +got):\n%s", diff)
	}
}

func TestEnabledFollowsToggleAndDiscriminator(t *testing.T) {
	schema := configSchema(t)
	combo := schema.Elements[2].Attribute.Name

	got, err := visibility.Enabled(schema, map[string]any{"enableConfig": true}, nil)
	if err != nil {
		t.Fatalf("enabled: %v", err)
	}
	if diff := cmp.Diff(names(schema, 0, 1, 2, 3), got); diff != "" {
		t.Fatalf("default member mismatch (-want +got):\n%s", diff)
	}

	got, err = visibility.Enabled(schema, map[string]any{"enableConfig": "true", combo: "Token"}, nil)
	if err != nil {
		t.Fatalf("enabled: %v", err)
	}
	if diff := cmp.Diff(names(schema, 0, 1, 2, 4), got); diff != "" {
		t.Fatalf("token member mismatch (-want +got):\n%s", diff)
	}
}

func TestEnabledCustomEvaluator(t *testing.T) {
	schema := configSchema(t)
	boom := errors.New("boom")

	all := visibility.EvaluatorFunc(func(string, form.Condition, visibility.Context) (bool, error) {
		return true, nil
	})
	got, err := visibility.Enabled(schema, nil, all)
	if err != nil {
		t.Fatalf("enabled: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected every element enabled, got %v", got)
	}

	failing := visibility.EvaluatorFunc(func(string, form.Condition, visibility.Context) (bool, error) {
		return false, boom
	})
	if _, err := visibility.Enabled(schema, nil, failing); !errors.Is(err, boom) {
		t.Fatalf("expected evaluator error, got %v", err)
	}
}

func TestClausesRejectsMalformedConditions(t *testing.T) {
	_, err := visibility.Clauses.Eval("field", form.Condition(`["AND",[1,2]]`), visibility.Context{})
	if err == nil {
		t.Fatalf("expected malformed clause error")
	}
}
