// Package naming derives stable external identifiers for operations and
// sanitizes value names before they are emitted by the wire and form
// renderers.
//
// Operation names come from an ordered chain of strategies. The first
// strategy that returns a non-empty candidate wins; when every strategy
// declines, callers fall back to their own default (usually the declared
// operation name). A Deduper resolves collisions inside one container by
// appending a numeric suffix.
package naming
