package store

import (
	"context"
	"fmt"
	"time"

	"github.com/masonlang/mason/internal/cost"
	"github.com/masonlang/mason/internal/layout"
	"github.com/masonlang/mason/internal/plan"
)

// Candidate is one analyzed plan within a run, carrying the verdicts of the
// three analyses.
type Candidate struct {
	Name   string
	Plan   plan.Plan
	Layout layout.Layout
	Cost   cost.Cost
	Sound  bool
}

// Run records one analysis invocation: which structure and query were
// analyzed, and when.
type Run struct {
	ID        string
	CreatedAt time.Time
	Structure string
	Query     string
}

// SaveRun persists a run and its candidates in a single transaction.
// Returns the generated run ID.
func (s *Store) SaveRun(ctx context.Context, structure, queryName string, candidates []Candidate) (string, error) {
	runID := NewRunID()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, structure, query) VALUES (?, ?, ?, ?)`,
		runID, createdAt, structure, queryName)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, c := range candidates {
		sound := 0
		if c.Sound {
			sound = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO candidates (run_id, name, fingerprint, plan, layout, cost, sound)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, c.Name, plan.Fingerprint(c.Plan),
			plan.String(c.Plan), layout.String(c.Layout), cost.String(c.Cost), sound)
		if err != nil {
			return "", fmt.Errorf("failed to insert candidate %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return runID, nil
}
