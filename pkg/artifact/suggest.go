package artifact

import (
	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// maxSuggestions bounds the candidates returned by Suggest.
const maxSuggestions = 5

// OperationNames lists the names of ops in declaration order.
func OperationNames(ops []typedesc.Operation) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	return names
}

// Suggest returns up to five operation names that fuzzily match query, best
// match first.
func Suggest(query string, names []string) []string {
	if query == "" || len(names) == 0 {
		return nil
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Unmatched returns the subset operation filters that select nothing in ops.
func (s Subset) Unmatched(ops []typedesc.Operation) []string {
	var missing []string
	for _, wanted := range s.Operations {
		token := normaliseToken(wanted)
		found := false
		for _, op := range ops {
			if normaliseToken(op.Name) == token || normaliseToken(op.ID) == token {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, wanted)
		}
	}
	return missing
}
