// Package openapi exposes the contract for turning OpenAPI 3 documents into
// type descriptor modules, so HTTP APIs can feed the same parameter compiler
// as hand-written descriptor files. The implementation lives under
// internal/openapi to keep kin-openapi hidden from consumers.
//
// Every operation becomes a resource operation: path, query and header
// parameters map to parameters, the request body becomes a "payload"
// parameter, and the 200/201 JSON response becomes the return type. Component
// schemas keep their names, so $ref cycles yield cyclic descriptors.
package openapi
