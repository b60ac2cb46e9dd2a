// Package visibility evaluates form enable conditions against input values.
package visibility

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-paramgen/pkg/form"
)

// Evaluator determines whether an element is enabled given its condition and
// the current input values.
type Evaluator interface {
	Eval(name string, condition form.Condition, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values are keyed by attribute name;
// attributes without a value fall back to their schema default.
type Context struct {
	Values map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(name string, condition form.Condition, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(name string, condition form.Condition, ctx Context) (bool, error) {
	return fn(name, condition, ctx)
}

// Clauses is the default Evaluator: every clause of the condition must
// match, where a clause {"key":"value"} matches when the value of key
// formats to "value".
var Clauses Evaluator = EvaluatorFunc(evalClauses)

func evalClauses(name string, condition form.Condition, ctx Context) (bool, error) {
	for _, raw := range condition.Clauses() {
		var clause map[string]string
		if err := json.Unmarshal([]byte(raw), &clause); err != nil {
			return false, fmt.Errorf("visibility: %s: malformed clause %s: %w", name, raw, err)
		}
		for key, want := range clause {
			if form.FormatDefault(ctx.Values[key]) != want {
				return false, nil
			}
		}
	}
	return true, nil
}

// Enabled lists the attribute and table names of schema that are enabled for
// values, in schema order. A nil evaluator uses Clauses.
func Enabled(schema form.Schema, values map[string]any, evaluator Evaluator) ([]string, error) {
	if evaluator == nil {
		evaluator = Clauses
	}
	ctx := Context{Values: withDefaults(schema.Elements, values)}
	var out []string
	err := walk(schema.Elements, func(name string, condition form.Condition) error {
		ok, err := evaluator.Eval(name, condition, ctx)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, name)
		}
		return nil
	})
	return out, err
}

func withDefaults(elements []form.Element, values map[string]any) map[string]any {
	merged := make(map[string]any, len(values))
	walkAttributes(elements, func(attr *form.Attribute) {
		if attr.DefaultValue != "" {
			merged[attr.Name] = attr.DefaultValue
		}
	})
	for key, value := range values {
		merged[key] = value
	}
	return merged
}

func walk(elements []form.Element, visit func(string, form.Condition) error) error {
	for _, element := range elements {
		switch element.Type {
		case form.ElementAttribute:
			if element.Attribute != nil {
				if err := visit(element.Attribute.Name, element.Attribute.EnableCondition); err != nil {
					return err
				}
			}
		case form.ElementAttributeGroup:
			if element.Group != nil {
				if err := walk(element.Group.Elements, visit); err != nil {
					return err
				}
			}
		case form.ElementTable:
			if element.Table != nil {
				if err := visit(element.Table.Name, element.Table.EnableCondition); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func walkAttributes(elements []form.Element, visit func(*form.Attribute)) {
	for _, element := range elements {
		switch element.Type {
		case form.ElementAttribute:
			if element.Attribute != nil {
				visit(element.Attribute)
			}
		case form.ElementAttributeGroup:
			if element.Group != nil {
				walkAttributes(element.Group.Elements, visit)
			}
		}
	}
}
