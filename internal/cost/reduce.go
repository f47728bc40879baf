package cost

import (
	"fmt"
	"math"
)

// Evaluate reduces a symbolic cost expression to a number, taking n as the
// value of Cardinality.
//
// This is ranking policy, not part of the estimator: the core never calls
// it, and consumers that need a different ordering (e.g. max-plus instead of
// sum, or per-operation weights) should supply their own reduction instead
// of changing Estimate. The logarithm is base 2 and clamps non-positive
// arguments to zero, matching "no work left" rather than producing -Inf for
// empty candidate sets.
func Evaluate(c Cost, n float64) float64 {
	switch e := c.(type) {
	case Cardinality:
		return n
	case Factor:
		return float64(e.Num) / float64(e.Den)
	case Log:
		v := Evaluate(e.Of, n)
		if v <= 1 {
			return 0
		}
		return math.Log2(v)
	case Times:
		return Evaluate(e.Left, n) * Evaluate(e.Right, n)
	case Plus:
		return Evaluate(e.Left, n) + Evaluate(e.Right, n)
	default:
		panic(fmt.Sprintf("unhandled cost node %T", c))
	}
}

// Compare orders two cost expressions by their value at cardinality n,
// returning -1, 0 or +1. Symbolic trees are not totally ordered; this is
// one admissible ordering, chosen by the consumer.
func Compare(a, b Cost, n float64) int {
	av, bv := Evaluate(a, n), Evaluate(b, n)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}
