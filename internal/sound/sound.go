// Package sound conservatively verifies that a plan never returns records
// violating a query.
//
// The check is deliberately one-sided: it must never approve an unsound
// plan, but it may reject a sound plan it cannot prove sound. A false
// negative here only costs the outer search a candidate; a false positive
// would ship a wrong data structure. Surrounding pipelines depend on this
// asymmetry, so it must not be "fixed" by adding algebraic reasoning.
package sound

import (
	"fmt"

	"github.com/masonlang/mason/internal/plan"
	"github.com/masonlang/mason/internal/query"
)

// Postcondition computes the query a plan's output is provably guaranteed to
// satisfy, by structural recursion over the plan tree.
func Postcondition(p plan.Plan) query.Query {
	switch n := p.(type) {
	case plan.All:
		return query.MatchAll{}
	case plan.None:
		return query.MatchNone{}
	case plan.HashLookup:
		return query.Compare{Field: n.Field, Op: query.Eq, Arg: n.Arg}
	case plan.BinarySearch:
		return query.Compare{Field: n.Field, Op: n.Op, Arg: n.Arg}
	case plan.Filter:
		return query.And{Left: Postcondition(n.Source), Right: n.Pred}
	case plan.SubPlan:
		return query.And{Left: Postcondition(n.Outer), Right: Postcondition(n.Inner)}
	case plan.Intersect:
		return query.And{Left: Postcondition(n.Left), Right: Postcondition(n.Right)}
	default:
		panic(fmt.Sprintf("unhandled plan node %T", p))
	}
}

// Check reports whether the plan is guaranteed to produce only records
// satisfying q.
//
// Both the plan's postcondition and q are flattened into their atomic
// conjuncts; the plan is sound iff every conjunct of q appears, by exact
// structural equality, among the conjuncts of the postcondition. Flattening
// absorbs And-nesting and ordering differences, but two atomic comparisons
// that are logically equal without being identical are not recognized: such
// plans are rejected even when semantically sound.
func Check(p plan.Plan, q query.Query) bool {
	have := query.Conjuncts(Postcondition(p))
	for _, want := range query.Conjuncts(q) {
		if !contains(have, want) {
			return false
		}
	}
	return true
}

// contains relies on the query variants being comparable value structs:
// == is exact structural equality.
func contains(conjuncts []query.Query, want query.Query) bool {
	for _, c := range conjuncts {
		if c == want {
			return true
		}
	}
	return false
}
