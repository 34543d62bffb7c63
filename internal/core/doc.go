// Package core implements the TCL parser, substitution engine, script and
// expression evaluators, dispatch, and the builtin command set.
//
// The engine never allocates a value of its own: every handle it touches
// comes from a hostops.Ops implementation supplied at construction. This
// keeps core free to be tested against a mock host and lets an embedder
// choose its own value representation, string interner, and collection
// types.
package core
