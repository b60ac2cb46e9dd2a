// Package validation lints descriptor modules before generation.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a lint finding with optional location metadata.
type Issue struct {
	Severity  Severity `json:"severity"`
	Operation string   `json:"operation,omitempty"`
	// Field is the dotted value name the issue refers to.
	Field   string `json:"field,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// Result captures lint outcomes. Valid is false when any error was found;
// warnings alone keep the module valid.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors returns the error-severity issues.
func (r Result) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Options configures module validation.
type Options struct {
	Classifier param.Classifier
	// Strict reports classifier warnings as errors.
	Strict bool
}

const (
	KindDuplicateOperation  = "duplicate-operation"
	KindMissingName         = "missing-name"
	KindUndeclaredPathParam = "undeclared-path-param"
	KindSkipped             = "skipped-operation"
)

// ValidateModule classifies every operation of module and reports skipped
// operations, classifier warnings and declaration problems.
func ValidateModule(ctx context.Context, module typedesc.Module, opts Options) (Result, error) {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = param.NewClassifier()
	}
	l := &linter{strict: opts.Strict}

	seen := make(map[string]int, len(module.Operations))
	for idx, op := range module.Operations {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		label := operationLabel(op, idx)
		if strings.TrimSpace(op.Name) == "" && strings.TrimSpace(op.ID) == "" {
			l.add(SeverityError, label, "", KindMissingName, "operation has neither a name nor an id")
		}
		if key := declaredKey(op); key != "" {
			if first, ok := seen[key]; ok {
				l.add(SeverityWarning, label, "", KindDuplicateOperation,
					fmt.Sprintf("declared name %q repeats operation #%d; the generated name will be suffixed", key, first))
			} else {
				seen[key] = idx
			}
		}
		l.pathParams(label, op)

		result, err := classifier.ClassifyOperation(op)
		if err != nil {
			l.add(SeverityError, label, "", "", err.Error())
			continue
		}
		if result.Skipped {
			l.add(SeverityError, label, "", KindSkipped, result.Reason)
		}
		for _, warning := range result.Warnings {
			l.warning(label, warning)
		}
	}
	return l.result(), nil
}

type linter struct {
	strict bool
	issues []Issue
}

func (l *linter) add(severity Severity, operation, field, kind, message string) {
	l.issues = append(l.issues, Issue{
		Severity:  severity,
		Operation: operation,
		Field:     field,
		Kind:      kind,
		Message:   strings.TrimSpace(message),
	})
}

func (l *linter) warning(operation string, warning param.Warning) {
	severity := SeverityWarning
	if l.strict {
		severity = SeverityError
	}
	l.add(severity, operation, warning.Path, warning.Kind, warning.Message)
}

func (l *linter) pathParams(operation string, op typedesc.Operation) {
	declared := make(map[string]struct{}, len(op.Params))
	for _, p := range op.Params {
		declared[p.Name] = struct{}{}
	}
	for _, segment := range op.Path {
		if !segment.IsParam() {
			continue
		}
		if _, ok := declared[segment.Param]; !ok {
			l.add(SeverityWarning, operation, segment.Param, KindUndeclaredPathParam,
				fmt.Sprintf("path parameter %q has no matching parameter", segment.Param))
		}
	}
}

func (l *linter) result() Result {
	res := Result{Valid: true, Issues: l.issues}
	for _, issue := range l.issues {
		if issue.Severity == SeverityError {
			res.Valid = false
			break
		}
	}
	return res
}

func declaredKey(op typedesc.Operation) string {
	if op.ID != "" {
		return strings.ToLower(op.ID)
	}
	return strings.ToLower(op.Name)
}

func operationLabel(op typedesc.Operation, idx int) string {
	switch {
	case op.ID != "":
		return op.ID
	case op.Name != "":
		return op.Name
	default:
		return fmt.Sprintf("#%d", idx)
	}
}
