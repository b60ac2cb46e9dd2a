// Package form renders Parameter Node trees into the grouped, conditionally
// visible form schema consumed by low-code form designers.
//
// Records expand into inline attributes plus one attribute group per nested
// record, unions get a synthetic discriminator combo whose value gates each
// member, and table-friendly maps/arrays become table elements. Visibility
// conditions are JSON arrays, either a single clause `[{"key":"value"}]` or
// a compound `["AND", clause, ...]`; see Merge.
package form
