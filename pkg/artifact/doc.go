// Package artifact drives per-operation generation: every operation of a
// descriptor module is classified into a Parameter Node tree, given a
// container-unique name, and rendered into wire declarations, parameter
// descriptors, a form schema, and any registered template outputs.
//
// Classification and rendering of distinct operations share no mutable state
// and run on a bounded worker pool. Naming runs sequentially in declaration
// order so collision suffixes are deterministic.
package artifact
