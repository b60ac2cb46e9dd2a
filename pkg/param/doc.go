// Package param defines the Parameter Node tree shared by the wire and form
// renderers. Classification lives in internal/param; this package re-exports
// its types and exposes NewClassifier.
//
// A node's Header.Name is the qualified dotted value name ("config.auth.token")
// and is the only source either renderer uses to derive identifiers. The
// Required flag is already propagated from optional ancestors, and Condition
// holds only the node's own visibility clause. Renderers dispatch on
// Header.Kind and must find the matching variant (Simple, Record, Map, Array
// or Union) behind it.
package param
