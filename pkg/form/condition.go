package form

import (
	"bytes"
	"encoding/json"
	"strings"
)

const andOperator = `"AND"`

// Condition is a visibility condition in JSON text form. The empty condition
// is always true.
type Condition string

// Clause builds the single-clause condition [{"key":"value"}].
func Clause(key, value string) Condition {
	raw, err := json.Marshal([]map[string]string{{key: value}})
	if err != nil {
		return ""
	}
	return Condition(raw)
}

// IsEmpty reports whether the condition is unconditional.
func (c Condition) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// IsCompound reports whether the condition is an ["AND", ...] form.
func (c Condition) IsCompound() bool {
	items, ok := c.items()
	return ok && len(items) > 0 && string(bytes.TrimSpace(items[0])) == andOperator
}

// Clauses returns the AND-ed clauses of c. Text that is not a JSON array is
// returned as one opaque clause.
func (c Condition) Clauses() []string {
	if c.IsEmpty() {
		return nil
	}
	items, ok := c.items()
	if !ok {
		return []string{strings.TrimSpace(string(c))}
	}
	if len(items) > 0 && string(bytes.TrimSpace(items[0])) == andOperator {
		items = items[1:]
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, compact(item))
	}
	return out
}

func (c Condition) items() ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(c), &items); err != nil {
		return nil, false
	}
	return items, true
}

// MarshalJSON emits the condition as raw JSON.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c.IsEmpty() {
		return []byte(`""`), nil
	}
	if !json.Valid([]byte(c)) {
		return json.Marshal(string(c))
	}
	return []byte(c), nil
}

// UnmarshalJSON accepts raw JSON arrays or quoted condition text.
func (c *Condition) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*c = Condition(text)
		return nil
	}
	*c = Condition(compact(trimmed))
	return nil
}

// Merge AND-combines two conditions. An empty side yields the other; an
// existing compound condition gains the new clauses at its end, otherwise
// both sides are wrapped into a new compound. Compound operands are
// flattened, so merging is associative.
func Merge(existing, next Condition) Condition {
	if existing.IsEmpty() {
		return next
	}
	if next.IsEmpty() {
		return existing
	}
	clauses := append(existing.Clauses(), next.Clauses()...)
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(andOperator)
	for _, clause := range clauses {
		b.WriteString(",")
		b.WriteString(clause)
	}
	b.WriteString("]")
	return Condition(b.String())
}

// MergeAll folds Merge over conditions left to right.
func MergeAll(conditions ...Condition) Condition {
	var out Condition
	for _, condition := range conditions {
		out = Merge(out, condition)
	}
	return out
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}
