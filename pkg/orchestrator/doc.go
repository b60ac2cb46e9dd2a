// Package orchestrator wires the loader → parser → generator pipeline behind a
// single entry point. Descriptor documents and OpenAPI documents are told
// apart by content, so callers only name a source.
package orchestrator
