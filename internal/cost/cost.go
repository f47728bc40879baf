// Package cost computes symbolic execution-cost estimates for plans.
//
// A Cost is an expression tree, never a number: the core guarantees only
// that equal symbolic expressions denote equal cost. Reducing a tree to a
// comparable number is a ranking policy, kept out of the estimator so it can
// evolve independently - see Evaluate and Compare in reduce.go, which only
// external consumers (such as the rank command) call.
//
// Cost is a sealed interface - only types in this package implement it. All
// variants are comparable value structs, so == on two Cost values is exact
// structural equality; Factor carries an exact rational rather than a float
// for that reason.
package cost

import (
	"fmt"

	"github.com/masonlang/mason/internal/plan"
)

// Cost represents a symbolic, non-reduced cost expression.
//
// This is a sealed interface - only types in this package implement it.
type Cost interface {
	costNode() // Marker method - seals interface to this package
}

// Cardinality is N, the number of elements currently under consideration.
type Cardinality struct{}

func (Cardinality) costNode() {}

// Factor is an exact rational constant Num/Den.
type Factor struct {
	Num int64
	Den int64
}

func (Factor) costNode() {}

// FactorOf builds a whole-number Factor.
func FactorOf(n int64) Factor {
	return Factor{Num: n, Den: 1}
}

// Log is the logarithm of a sub-cost.
type Log struct {
	Of Cost
}

func (Log) costNode() {}

// Times is the product of two sub-costs.
type Times struct {
	Left  Cost
	Right Cost
}

func (Times) costNode() {}

// Plus is the sum of two sub-costs.
type Plus struct {
	Left  Cost
	Right Cost
}

func (Plus) costNode() {}

// selectivity is the assumed fraction of records surviving the left-hand
// side of a SubPlan when no better information exists. The fixed 1/2 is a
// heuristic the surrounding synthesis pipeline calibrates against; changing
// it silently would reorder every plan comparison.
var selectivity = Factor{Num: 1, Den: 2}

// Estimate computes a symbolic cost expression for the plan. The recursion
// threads a base cost representing the size of the candidate set at that
// point; the top-level base is Cardinality.
func Estimate(p plan.Plan) Cost {
	return estimate(p, Cardinality{})
}

func estimate(p plan.Plan, base Cost) Cost {
	switch n := p.(type) {
	case plan.All:
		return base
	case plan.None:
		return FactorOf(0)
	case plan.HashLookup:
		// Constant-time lookup regardless of base size.
		return FactorOf(1)
	case plan.BinarySearch:
		return Log{Of: base}
	case plan.Filter:
		// The predicate contributes no modeled cost, and the base passed to
		// surrounding operations is not shrunk. Known simplification; keep.
		return estimate(n.Source, base)
	case plan.SubPlan:
		// The selectivity factor applies once, to the base Inner runs
		// against, not to Outer.
		return Plus{
			Left:  estimate(n.Outer, base),
			Right: estimate(n.Inner, Times{Left: base, Right: selectivity}),
		}
	case plan.Intersect:
		// Both sides costed independently against the unmodified base; no
		// index-intersection speedup is modeled.
		return Plus{
			Left:  estimate(n.Left, base),
			Right: estimate(n.Right, base),
		}
	default:
		panic(fmt.Sprintf("unhandled plan node %T", p))
	}
}

// String renders the cost expression for diagnostics, golden files and the
// store, e.g. "1 + log(N * 1/2)".
func String(c Cost) string {
	switch n := c.(type) {
	case Cardinality:
		return "N"
	case Factor:
		if n.Den == 1 {
			return fmt.Sprintf("%d", n.Num)
		}
		return fmt.Sprintf("%d/%d", n.Num, n.Den)
	case Log:
		return fmt.Sprintf("log(%s)", String(n.Of))
	case Times:
		return fmt.Sprintf("(%s * %s)", String(n.Left), String(n.Right))
	case Plus:
		return fmt.Sprintf("(%s + %s)", String(n.Left), String(n.Right))
	default:
		panic(fmt.Sprintf("unhandled cost node %T", c))
	}
}
