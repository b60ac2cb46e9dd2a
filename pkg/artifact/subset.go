package artifact

import (
	"strings"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Subset selects operations by name or explicit id, accessor, or kind. An
// operation is kept when it matches any populated filter. The zero value keeps
// every operation.
type Subset struct {
	Operations []string `json:"operations,omitempty" yaml:"operations,omitempty"`
	Accessors  []string `json:"accessors,omitempty" yaml:"accessors,omitempty"`
	Kinds      []string `json:"kinds,omitempty" yaml:"kinds,omitempty"`
}

// Empty reports whether the subset has no filters.
func (s Subset) Empty() bool {
	return len(s.Operations) == 0 && len(s.Accessors) == 0 && len(s.Kinds) == 0
}

// Apply returns the operations selected by s, preserving declaration order.
func (s Subset) Apply(ops []typedesc.Operation) []typedesc.Operation {
	m := newSubsetMatcher(s)
	if m.empty() {
		return ops
	}
	filtered := make([]typedesc.Operation, 0, len(ops))
	for _, op := range ops {
		if m.matches(op) {
			filtered = append(filtered, op)
		}
	}
	return filtered
}

type subsetMatcher struct {
	operations map[string]struct{}
	accessors  map[string]struct{}
	kinds      map[string]struct{}
}

func newSubsetMatcher(subset Subset) subsetMatcher {
	return subsetMatcher{
		operations: normaliseTokens(subset.Operations),
		accessors:  normaliseTokens(subset.Accessors),
		kinds:      normaliseTokens(subset.Kinds),
	}
}

func (m subsetMatcher) empty() bool {
	return len(m.operations) == 0 && len(m.accessors) == 0 && len(m.kinds) == 0
}

func (m subsetMatcher) matches(op typedesc.Operation) bool {
	if contains(m.operations, op.Name) || contains(m.operations, op.ID) {
		return true
	}
	if contains(m.accessors, op.Accessor) {
		return true
	}
	return contains(m.kinds, string(op.Kind))
}

func contains(set map[string]struct{}, value string) bool {
	if len(set) == 0 {
		return false
	}
	token := normaliseToken(value)
	if token == "" {
		return false
	}
	_, ok := set[token]
	return ok
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		if token := normaliseToken(value); token != "" {
			out[token] = struct{}{}
		}
	}
	return out
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(value), "'"))
}
