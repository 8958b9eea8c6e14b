// Package theory provides the canonical music-theory catalog: pitch-class
// arithmetic, enharmonic spelling policy, the interval-token grammar, and
// the chord/scale formula tables.
//
// The formula catalog is defined declaratively in catalog.cue and compiled
// once at load time. All catalog data is immutable after construction; every
// function in this package is a pure function of its arguments and is safe
// to call concurrently without locks.
//
// Construction-time vs runtime failures:
//   - A malformed interval token or formula definition is a catalog bug and
//     fails at load (LoadCatalog returns a CatalogError; Default panics).
//   - Unresolved name/alias lookups at runtime return ok=false, never an
//     error. User input cannot make this package fail.
package theory
