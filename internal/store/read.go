package store

import (
	"context"
	"fmt"
	"time"
)

// StoredCandidate is a candidate row as persisted: the algebra terms are
// stored rendered, not re-parsed on the way out.
type StoredCandidate struct {
	RunID       string
	Name        string
	Fingerprint string
	Plan        string
	Layout      string
	Cost        string
	Sound       bool
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, structure, query FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Structure, &r.Query); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Candidates returns the candidates of a run in name order.
func (s *Store) Candidates(ctx context.Context, runID string) ([]StoredCandidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, name, fingerprint, plan, layout, cost, sound
		 FROM candidates WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []StoredCandidate
	for rows.Next() {
		var c StoredCandidate
		var sound int
		if err := rows.Scan(&c.RunID, &c.Name, &c.Fingerprint, &c.Plan, &c.Layout, &c.Cost, &sound); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Sound = sound != 0
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// FindByFingerprint returns every stored candidate whose plan has the given
// content-addressed fingerprint, across all runs.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]StoredCandidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, name, fingerprint, plan, layout, cost, sound
		 FROM candidates WHERE fingerprint = ? ORDER BY run_id DESC, name`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []StoredCandidate
	for rows.Next() {
		var c StoredCandidate
		var sound int
		if err := rows.Scan(&c.RunID, &c.Name, &c.Fingerprint, &c.Plan, &c.Layout, &c.Cost, &sound); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Sound = sound != 0
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
