package formjson_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-paramgen/pkg/form"
	"github.com/goliatone/go-paramgen/pkg/render"
	"github.com/goliatone/go-paramgen/pkg/renderers/formjson"
)

func TestRenderEncodesFormSchema(t *testing.T) {
	schema := form.Schema{Elements: []form.Element{
		{Type: form.ElementAttribute, Attribute: &form.Attribute{
			Name:        "owner",
			DisplayName: "Owner",
			InputType:   form.InputString,
			Required:    "true",
		}},
	}}

	out, err := formjson.New(formjson.WithIndent("")).Render(context.Background(), render.View{Name: "op", Form: schema})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded form.Schema
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if diff := cmp.Diff(schema, decoded, cmpopts.IgnoreFields(form.Attribute{}, "Synthetic")); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := formjson.New().Render(ctx, render.View{}); err == nil {
		t.Fatalf("expected context error")
	}
}
