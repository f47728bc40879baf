package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonlang/mason/internal/cost"
	"github.com/masonlang/mason/internal/layout"
	"github.com/masonlang/mason/internal/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mason.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mason.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestNewRunID_TimeSortable(t *testing.T) {
	a := NewRunID()
	time.Sleep(2 * time.Millisecond)
	b := NewRunID()
	assert.Less(t, a, b)
}

func testCandidates() []Candidate {
	lookup := plan.HashLookup{Field: "name", Arg: "y"}
	return []Candidate{
		{
			Name:   "hash",
			Plan:   lookup,
			Layout: layout.Infer(lookup),
			Cost:   cost.Estimate(lookup),
			Sound:  true,
		},
		{
			Name:   "scanAll",
			Plan:   plan.All{},
			Layout: layout.Infer(plan.All{}),
			Cost:   cost.Estimate(plan.All{}),
			Sound:  false,
		},
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID, err := s.SaveRun(ctx, "Accounts", "lookup", testCandidates())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "Accounts", runs[0].Structure)
	assert.Equal(t, "lookup", runs[0].Query)
	assert.False(t, runs[0].CreatedAt.IsZero())

	candidates, err := s.Candidates(ctx, runID)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// Name order.
	assert.Equal(t, "hash", candidates[0].Name)
	assert.Equal(t, "scanAll", candidates[1].Name)

	lookup := plan.HashLookup{Field: "name", Arg: "y"}
	assert.Equal(t, plan.String(lookup), candidates[0].Plan)
	assert.Equal(t, plan.Fingerprint(lookup), candidates[0].Fingerprint)
	assert.Equal(t, layout.String(layout.Infer(lookup)), candidates[0].Layout)
	assert.Equal(t, cost.String(cost.Estimate(lookup)), candidates[0].Cost)
	assert.True(t, candidates[0].Sound)
	assert.False(t, candidates[1].Sound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveRun(ctx, "Accounts", "lookup", nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.SaveRun(ctx, "Accounts", "range", nil)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestSaveRun_DuplicateCandidateNameFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	dup := []Candidate{
		{Name: "same", Plan: plan.All{}, Layout: layout.Infer(plan.All{}), Cost: cost.Estimate(plan.All{}), Sound: true},
		{Name: "same", Plan: plan.None{}, Layout: layout.Infer(plan.None{}), Cost: cost.Estimate(plan.None{}), Sound: true},
	}
	_, err := s.SaveRun(ctx, "Accounts", "lookup", dup)
	require.Error(t, err)

	// Transaction rolled back: no partial run.
	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFindByFingerprint_AcrossRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	lookup := plan.HashLookup{Field: "name", Arg: "y"}
	c := Candidate{Name: "hash", Plan: lookup, Layout: layout.Infer(lookup), Cost: cost.Estimate(lookup), Sound: true}

	_, err := s.SaveRun(ctx, "Accounts", "lookup", []Candidate{c})
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, "Accounts", "lookup", []Candidate{c})
	require.NoError(t, err)

	found, err := s.FindByFingerprint(ctx, plan.Fingerprint(lookup))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	missing, err := s.FindByFingerprint(ctx, "no-such-fingerprint")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
