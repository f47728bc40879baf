// Package layout computes the physical storage layout a plan requires.
//
// The Layout algebra distinguishes "one record" (RecordType) from "a
// collection of records" (every other variant). Combinators that need
// collection semantics promote a bare RecordType base first; Promote is
// idempotent, so already-collection layouts pass through unchanged.
//
// Layout is a sealed interface - only types in this package implement it.
// Infer is a pure, total structural recursion: it terminates on every finite
// plan and is safe to call concurrently from independent callers.
package layout

import (
	"fmt"

	"github.com/masonlang/mason/internal/plan"
)

// Layout represents a physical storage layout.
//
// This is a sealed interface - only types in this package implement it.
// All variants are comparable value structs, so == on two Layout values is
// exact structural equality.
type Layout interface {
	layoutNode() // Marker method - seals interface to this package
}

// RecordType is a single record - the base case, not a collection.
type RecordType struct{}

func (RecordType) layoutNode() {}

// Empty is the layout of a plan known to produce nothing.
type Empty struct{}

func (Empty) layoutNode() {}

// HashIndex maps values of Field to sub-layouts Of.
type HashIndex struct {
	Field string
	Of    Layout
}

func (HashIndex) layoutNode() {}

// SortedIndex keeps sub-layouts Of ordered by Field.
type SortedIndex struct {
	Field string
	Of    Layout
}

func (SortedIndex) layoutNode() {}

// UnsortedCollection is a bag of sub-layouts Of with no ordering guarantee.
type UnsortedCollection struct {
	Of Layout
}

func (UnsortedCollection) layoutNode() {}

// Pair holds two independently-maintained layouts side by side.
type Pair struct {
	Left  Layout
	Right Layout
}

func (Pair) layoutNode() {}

// Promote normalizes a single-record layout into a one-element collection
// layout. A bare RecordType becomes UnsortedCollection(RecordType); every
// other variant already behaves as a collection and is returned unchanged,
// so Promote is idempotent.
func Promote(l Layout) Layout {
	if _, isRecord := l.(RecordType); isRecord {
		return UnsortedCollection{Of: RecordType{}}
	}
	return l
}

// Infer computes the minimal physical layout required to execute the plan.
// The recursion threads a base layout representing the structure available
// to the innermost operation; the top-level base is a bare RecordType.
func Infer(p plan.Plan) Layout {
	return infer(p, RecordType{})
}

func infer(p plan.Plan, base Layout) Layout {
	switch n := p.(type) {
	case plan.All:
		// A full scan needs nothing beyond what it is given.
		return base
	case plan.None:
		// Nothing downstream matters once the plan short-circuits to nothing.
		return Empty{}
	case plan.HashLookup:
		// Point lookups bucket collections, never single records.
		return HashIndex{Field: n.Field, Of: Promote(base)}
	case plan.BinarySearch:
		return SortedIndex{Field: n.Field, Of: base}
	case plan.Filter:
		// A filter needs whatever its sub-plan needs, and nothing more.
		return infer(n.Source, base)
	case plan.SubPlan:
		// Inner's output layout becomes Outer's input layout.
		return infer(n.Outer, infer(n.Inner, base))
	case plan.Intersect:
		return Pair{
			Left:  infer(n.Left, base),
			Right: infer(n.Right, base),
		}
	default:
		panic(fmt.Sprintf("unhandled plan node %T", p))
	}
}

// String renders the layout for diagnostics, golden files and the store,
// e.g. "HashIndex(name, UnsortedCollection(RecordType))".
func String(l Layout) string {
	switch n := l.(type) {
	case RecordType:
		return "RecordType"
	case Empty:
		return "Empty"
	case HashIndex:
		return fmt.Sprintf("HashIndex(%s, %s)", n.Field, String(n.Of))
	case SortedIndex:
		return fmt.Sprintf("SortedIndex(%s, %s)", n.Field, String(n.Of))
	case UnsortedCollection:
		return fmt.Sprintf("UnsortedCollection(%s)", String(n.Of))
	case Pair:
		return fmt.Sprintf("Pair(%s, %s)", String(n.Left), String(n.Right))
	default:
		panic(fmt.Sprintf("unhandled layout node %T", l))
	}
}
