package plan

import (
	"fmt"

	"github.com/masonlang/mason/internal/query"
)

// Plan represents a candidate strategy for producing a collection of records.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the analyses.
type Plan interface {
	planNode() // Marker method - seals interface to this package
}

// All scans every record.
type All struct{}

func (All) planNode() {}

// None produces the empty result without touching storage.
type None struct{}

func (None) planNode() {}

// HashLookup is a point lookup: it retrieves the records whose Field equals
// the bound variable Arg, using a hash index on Field.
type HashLookup struct {
	Field string
	Arg   string
}

func (HashLookup) planNode() {}

// BinarySearch is a range scan on a sorted index over Field, keeping the
// records standing in relation Op to the bound variable Arg.
type BinarySearch struct {
	Field string
	Op    query.Op
	Arg   string
}

func (BinarySearch) planNode() {}

// Filter post-filters the output of Source with the predicate Pred.
type Filter struct {
	Source Plan
	Pred   query.Query
}

func (Filter) planNode() {}

// SubPlan evaluates Inner, then evaluates Outer on Inner's result. The
// storage layout Inner produces becomes the layout Outer runs against.
type SubPlan struct {
	Outer Plan
	Inner Plan
}

func (SubPlan) planNode() {}

// Intersect evaluates both sides independently and keeps the set
// intersection of their results.
type Intersect struct {
	Left  Plan
	Right Plan
}

func (Intersect) planNode() {}

// String renders the plan in the surface syntax used by diagnostics, golden
// files and the store, e.g. "intersect(binarySearch(age gt x), hashLookup(name, y))".
func String(p Plan) string {
	switch n := p.(type) {
	case All:
		return "all"
	case None:
		return "none"
	case HashLookup:
		return fmt.Sprintf("hashLookup(%s, %s)", n.Field, n.Arg)
	case BinarySearch:
		return fmt.Sprintf("binarySearch(%s %s %s)", n.Field, n.Op, n.Arg)
	case Filter:
		return fmt.Sprintf("filter(%s, %s)", String(n.Source), query.String(n.Pred))
	case SubPlan:
		return fmt.Sprintf("subPlan(%s, %s)", String(n.Outer), String(n.Inner))
	case Intersect:
		return fmt.Sprintf("intersect(%s, %s)", String(n.Left), String(n.Right))
	default:
		panic(fmt.Sprintf("unhandled plan node %T", p))
	}
}
