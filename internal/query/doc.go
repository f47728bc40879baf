// Package query defines the conjunctive acceptance predicates that candidate
// plans are checked against.
//
// A Query describes which records belong in a result set: it is evaluated
// against one record plus a set of externally-bound comparison variables.
// Queries are closed, finite, immutable trees built from four variants:
//
//   - MatchAll:  every record is accepted
//   - MatchNone: no record is accepted
//   - Compare:   one field compared against a bound variable (Eq or Gt)
//   - And:       both sub-queries must accept
//
// Query is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the analyses; every switch over Query panics
// on an unknown variant rather than silently absorbing it, so adding a
// variant without updating an analysis fails loudly.
//
// And is associative and commutative in meaning but kept as a binary tree:
// no normalization or algebraic rewriting happens here. Conjuncts flattens
// the And-structure when an analysis needs the atomic conjuncts.
//
// Disjunction is deliberately unsupported: the algebra has no Or variant.
package query
