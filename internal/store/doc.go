// Package store provides durable storage for analysis runs.
//
// An outer synthesis search evaluates many candidate plans per query; the
// store keeps each run's verdicts (required layout, soundness, symbolic
// cost) so searches can be resumed, compared across revisions of a
// specification, and inspected after the fact. Candidates are keyed by
// content-addressed plan fingerprint, so re-analyzing the same plan is a
// no-op at the storage layer.
//
// Storage is SQLite with WAL mode for concurrent read access. The pure
// analyses never touch the store; only the CLI writes to it.
package store
