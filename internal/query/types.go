package query

import "fmt"

// Op identifies the comparison operator of a Compare predicate.
//
// Only equality and strictly-greater-than are supported: they are the two
// operators the plan algebra can serve from an index (point lookup on a hash
// index, range scan on a sorted index).
type Op int

const (
	// Eq accepts records whose field equals the bound variable.
	Eq Op = iota
	// Gt accepts records whose field is strictly greater than the bound variable.
	Gt
)

// String returns the operator's surface syntax.
func (o Op) String() string {
	switch o {
	case Eq:
		return "eq"
	case Gt:
		return "gt"
	default:
		panic(fmt.Sprintf("unknown operator %d", int(o)))
	}
}

// Query represents a conjunctive acceptance predicate over one record.
//
// This is a sealed interface - only MatchAll, MatchNone, Compare and And
// implement it. All variants are comparable value structs, so == on two
// Query values is exact structural equality.
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// MatchAll accepts every record.
type MatchAll struct{}

func (MatchAll) queryNode() {}

// MatchNone accepts no record.
type MatchNone struct{}

func (MatchNone) queryNode() {}

// Compare accepts records whose Field stands in relation Op to the variable
// named Arg. Arg is bound by the caller's context, not by this package;
// binding consistency is a construction-time precondition (see Validate).
type Compare struct {
	Field string
	Op    Op
	Arg   string
}

func (Compare) queryNode() {}

// And accepts records that both sub-queries accept.
//
// The tree shape is preserved as written. Conjuncts recovers the flat
// conjunct sequence when order-insensitive treatment is wanted.
type And struct {
	Left  Query
	Right Query
}

func (And) queryNode() {}

// Conjuncts flattens a query into its ordered sequence of atomic conjuncts
// by recursively decomposing And nodes. A non-And node is its own singleton
// sequence, so the result is never empty.
func Conjuncts(q Query) []Query {
	switch n := q.(type) {
	case MatchAll, MatchNone, Compare:
		return []Query{n}
	case And:
		return append(Conjuncts(n.Left), Conjuncts(n.Right)...)
	default:
		panic(fmt.Sprintf("unhandled query node %T", q))
	}
}

// String renders the query in the surface syntax used by diagnostics and
// golden files, e.g. "(age gt x) and (name eq y)".
func String(q Query) string {
	switch n := q.(type) {
	case MatchAll:
		return "true"
	case MatchNone:
		return "false"
	case Compare:
		return fmt.Sprintf("%s %s %s", n.Field, n.Op, n.Arg)
	case And:
		return fmt.Sprintf("(%s) and (%s)", String(n.Left), String(n.Right))
	default:
		panic(fmt.Sprintf("unhandled query node %T", q))
	}
}
