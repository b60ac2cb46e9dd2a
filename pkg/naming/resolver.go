package naming

import (
	"strings"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Strategy proposes an identifier for an operation. An empty result means the
// strategy has no opinion.
type Strategy func(op typedesc.Operation) string

// Resolver runs strategies in priority order and returns the first non-empty
// candidate.
type Resolver struct {
	strategies []Strategy
}

// Option configures a Resolver.
type Option func(*resolverOptions)

type resolverOptions struct {
	prefixes    []string
	collections []string
	suffixes    []string
	strategies  []Strategy
}

// WithGenericPrefixes sets the leading tokens the type-name heuristic may
// drop, typically the words of the module name ("Gmail", "Slack").
func WithGenericPrefixes(prefixes ...string) Option {
	return func(o *resolverOptions) {
		o.prefixes = append(o.prefixes, prefixes...)
	}
}

// WithCollectionTokens replaces the trailing tokens the heuristic drops.
func WithCollectionTokens(tokens ...string) Option {
	return func(o *resolverOptions) {
		o.collections = append([]string(nil), tokens...)
	}
}

// WithTypeSuffixes replaces the type-name suffixes the heuristic strips.
func WithTypeSuffixes(suffixes ...string) Option {
	return func(o *resolverOptions) {
		o.suffixes = append([]string(nil), suffixes...)
	}
}

// WithStrategies replaces the default chain entirely.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *resolverOptions) {
		o.strategies = append([]Strategy(nil), strategies...)
	}
}

// DefaultTypeSuffixes are stripped from type names before tokenizing. Longer
// suffixes come first so "Queries" wins over "Query".
var DefaultTypeSuffixes = []string{
	"Parameters",
	"Response",
	"Request",
	"Queries",
	"Headers",
	"Payload",
	"Params",
	"Header",
	"Output",
	"Query",
	"Input",
}

// DefaultCollectionTokens are dropped from the end of derived names.
var DefaultCollectionTokens = []string{
	"Collection",
	"Results",
	"Result",
	"Array",
	"Items",
	"List",
	"Page",
}

// NewResolver builds the default chain: explicit identifier, path-derived,
// then the type-name heuristic.
func NewResolver(options ...Option) *Resolver {
	cfg := resolverOptions{
		collections: DefaultCollectionTokens,
		suffixes:    DefaultTypeSuffixes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.strategies) > 0 {
		return &Resolver{strategies: cfg.strategies}
	}
	heuristic := TypeNameHeuristic{
		Prefixes:    cfg.prefixes,
		Collections: cfg.collections,
		Suffixes:    cfg.suffixes,
	}
	return &Resolver{strategies: []Strategy{ExplicitID, PathDerived, heuristic.Resolve}}
}

// Resolve returns the first candidate produced by the chain, reporting false
// when every strategy declined.
func (r *Resolver) Resolve(op typedesc.Operation) (string, bool) {
	for _, strategy := range r.strategies {
		if candidate := strings.TrimSpace(strategy(op)); candidate != "" {
			return candidate, true
		}
	}
	return "", false
}

// ResolveOr resolves op, falling back to the declared operation name.
func (r *Resolver) ResolveOr(op typedesc.Operation) string {
	if name, ok := r.Resolve(op); ok {
		return name
	}
	return strings.TrimLeft(op.Name, "'")
}

// ExplicitID returns the externally declared identifier verbatim.
func ExplicitID(op typedesc.Operation) string {
	return strings.TrimSpace(op.ID)
}

// PathDerived builds "<verb><Literal...>By<Param>..." for resource
// operations, e.g. get /users/[id]/posts becomes "getUsersPostsById".
func PathDerived(op typedesc.Operation) string {
	verb := strings.ToLower(strings.TrimSpace(op.Accessor))
	if verb == "" || len(op.Path) == 0 {
		return ""
	}
	var literals, params strings.Builder
	for _, segment := range op.Path {
		if segment.IsParam() {
			params.WriteString("By")
			params.WriteString(Pascal(segment.Param))
			continue
		}
		literals.WriteString(Pascal(segment.Literal))
	}
	return verb + literals.String() + params.String()
}

// TypeNameHeuristic derives a name from the first parameter's type name, then
// from the return type name.
type TypeNameHeuristic struct {
	Prefixes    []string
	Collections []string
	Suffixes    []string
}

// Resolve implements Strategy.
func (h TypeNameHeuristic) Resolve(op typedesc.Operation) string {
	var candidates []string
	if len(op.Params) > 0 {
		candidates = append(candidates, declaredName(op.Params[0].Type))
	}
	candidates = append(candidates, declaredName(op.Return))
	for _, candidate := range candidates {
		if name := h.FromTypeName(candidate); name != "" {
			return name
		}
	}
	return ""
}

// FromTypeName applies the heuristic to a single type name.
func (h TypeNameHeuristic) FromTypeName(typeName string) string {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return ""
	}
	for _, suffix := range h.Suffixes {
		if strings.HasSuffix(typeName, suffix) && len(typeName) > len(suffix) {
			typeName = strings.TrimSuffix(typeName, suffix)
			break
		}
	}
	tokens := SplitWords(typeName)
	if len(tokens) >= 3 && containsFold(h.Prefixes, tokens[0]) {
		tokens = tokens[1:]
	}
	if len(tokens) >= 2 && containsFold(h.Collections, tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return LowerCamel(tokens)
}

// declaredName unwraps arrays and optional unions to reach a named type.
func declaredName(d typedesc.Descriptor) string {
	for depth := 0; d != nil && depth < 8; depth++ {
		if name := d.Name(); name != "" && d.Kind() != typedesc.KindPrimitive {
			return name
		}
		switch d.Kind() {
		case typedesc.KindArray:
			d = d.Elem()
		case typedesc.KindUnion:
			var next typedesc.Descriptor
			for _, member := range d.Members() {
				if member != nil && member.Kind() != typedesc.KindNil {
					if next != nil {
						return ""
					}
					next = member
				}
			}
			d = next
		default:
			return ""
		}
	}
	return ""
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}
