package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgen/pkg/testsupport"
	"github.com/goliatone/go-paramgen/pkg/validation"
)

const lintDocument = `
module: lint
operations:
  - name: getUser
    accessor: get
    path: users/[id]
    params:
      - name: userId
        type: string
  - name: subscribe
    params:
      - name: handler
        type: function
  - name: notify
    params:
      - name: message
        type: string
      - name: onDone
        type: function
        optional: true
  - name: getuser
    params:
      - name: id
        type: string
`

func TestValidateModuleReportsIssues(t *testing.T) {
	module := testsupport.MustDecodeModule(t, lintDocument)

	result, err := validation.ValidateModule(context.Background(), module, validation.Options{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected module with a skipped operation to be invalid")
	}

	type issue struct {
		Severity  validation.Severity
		Operation string
		Field     string
		Kind      string
	}
	var got []issue
	for _, i := range result.Issues {
		got = append(got, issue{i.Severity, i.Operation, i.Field, i.Kind})
	}
	want := []issue{
		{validation.SeverityWarning, "getUser", "id", validation.KindUndeclaredPathParam},
		{validation.SeverityError, "subscribe", "", validation.KindSkipped},
		{validation.SeverityWarning, "subscribe", "handler", "unsupported-type"},
		{validation.SeverityWarning, "notify", "onDone", "unsupported-type"},
		{validation.SeverityWarning, "getuser", "", validation.KindDuplicateOperation},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if n := len(result.Errors()); n != 1 {
		t.Fatalf("expected one error issue, got %d", n)
	}
}

func TestValidateModuleStrictPromotesWarnings(t *testing.T) {
	module := testsupport.MustDecodeModule(t, `
module: strict
operations:
  - name: notify
    params:
      - name: onDone
        type: function
        optional: true
`)

	lenient, err := validation.ValidateModule(context.Background(), module, validation.Options{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !lenient.Valid {
		t.Fatalf("expected warnings alone to keep the module valid: %+v", lenient.Issues)
	}

	strict, err := validation.ValidateModule(context.Background(), module, validation.Options{Strict: true})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strict.Valid {
		t.Fatalf("expected strict validation to fail")
	}
}

func TestValidateModuleHonoursCancelledContext(t *testing.T) {
	module := testsupport.MustDecodeModule(t, lintDocument)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := validation.ValidateModule(ctx, module, validation.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
