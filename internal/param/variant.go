package param

import (
	"errors"
	"fmt"
)

// ErrMalformedVariant reports a node whose declared kind is not backed by the
// matching variant. It indicates a programming error, not bad input.
var ErrMalformedVariant = errors.New("param: node kind does not match its variant")

func malformed(n Node, want string) error {
	if n == nil {
		return fmt.Errorf("%w: nil node, want %s", ErrMalformedVariant, want)
	}
	return fmt.Errorf("%w: %q is %s but holds %T", ErrMalformedVariant, n.Info().Name, n.Info().Kind, n)
}

// AsSimple returns n as a Simple node when its kind is scalar.
func AsSimple(n Node) (*Simple, error) {
	s, ok := n.(*Simple)
	if !ok || !s.Kind.IsScalar() {
		return nil, malformed(n, "Simple")
	}
	return s, nil
}

// AsRecord returns n as a Record node when its kind is record.
func AsRecord(n Node) (*Record, error) {
	r, ok := n.(*Record)
	if !ok || r.Kind != KindRecord {
		return nil, malformed(n, "Record")
	}
	return r, nil
}

// AsMap returns n as a Map node when its kind is map.
func AsMap(n Node) (*Map, error) {
	m, ok := n.(*Map)
	if !ok || m.Kind != KindMap {
		return nil, malformed(n, "Map")
	}
	return m, nil
}

// AsArray returns n as an Array node when its kind is array.
func AsArray(n Node) (*Array, error) {
	a, ok := n.(*Array)
	if !ok || a.Kind != KindArray {
		return nil, malformed(n, "Array")
	}
	return a, nil
}

// AsUnion returns n as a Union node when its kind is union.
func AsUnion(n Node) (*Union, error) {
	u, ok := n.(*Union)
	if !ok || u.Kind != KindUnion {
		return nil, malformed(n, "Union")
	}
	return u, nil
}
