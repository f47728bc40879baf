// Package plan defines candidate execution strategies for producing a
// collection of records.
//
// A Plan is what the outer synthesis search enumerates: a tree of primitive
// accesses (All, None, HashLookup, BinarySearch) combined by Filter, SubPlan
// and Intersect. The three analyses - layout.Infer, sound.Check and
// cost.Estimate - are independent, pure structural recursions over the same
// Plan value; none of them executes anything.
//
// Plan is a sealed interface - only types in this package implement it. All
// variants are comparable value structs and every plan tree is immutable
// once constructed, so plans are safe to share between concurrent analyses
// without synchronization.
//
// Field names inside a plan must be addressable on the record type reachable
// at that point in the tree, and variable names must match the query the
// plan is meant to serve. That is a construction-time precondition enforced
// by the caller; Validate offers an advisory check for front-ends and tests.
package plan
