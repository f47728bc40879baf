package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
	require.NoError(t, err)
	return s
}

func TestRun_AccountsLookup(t *testing.T) {
	s := loadTestScenario(t, "accounts-lookup")

	result, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, "Accounts", result.Structure)
	assert.Equal(t, "lookup", result.Query)
	assert.Equal(t, "(age gt x) and (name eq y)", result.Target)
	require.Len(t, result.Candidates, 4)

	intersect := result.Candidates[0]
	assert.Equal(t, "intersectIndexes", intersect.Name)
	assert.Equal(t, "intersect(binarySearch(age gt x), hashLookup(name, y))", intersect.Plan)
	assert.True(t, intersect.Sound)
	assert.Equal(t, "(log(N) + 1)", intersect.Cost)
	assert.Len(t, intersect.Fingerprint, 64)

	hashOnly := result.Candidates[2]
	assert.Equal(t, "hashOnly", hashOnly.Name)
	assert.False(t, hashOnly.Sound)

	assert.Empty(t, CheckExpectations(s, result))
}

func TestRun_ByAge(t *testing.T) {
	s := loadTestScenario(t, "accounts-by-age")

	result, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, "age gt x", result.Target)
	require.Len(t, result.Candidates, 2)
	assert.True(t, result.Candidates[0].Sound)
	assert.False(t, result.Candidates[1].Sound)
	assert.Empty(t, CheckExpectations(s, result))
}

func TestRun_UnknownStructure(t *testing.T) {
	s := loadTestScenario(t, "accounts-lookup")
	s.Structure = "Ledger"

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Ledger"`)
}

func TestRun_UnknownQuery(t *testing.T) {
	s := loadTestScenario(t, "accounts-lookup")
	s.Query = "vanish"

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"vanish"`)
}

func TestRun_InvalidCandidateAborts(t *testing.T) {
	s := loadTestScenario(t, "accounts-lookup")
	s.Candidates = append(s.Candidates, CandidateSpec{
		Name: "badField",
		Plan: PlanNode{HashLookup: &HashLookupNode{Field: "height", Arg: "y"}},
	})

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"height"`)
}

func TestCheckExpectations_ReportsMismatches(t *testing.T) {
	s := loadTestScenario(t, "accounts-by-age")

	result, err := Run(s)
	require.NoError(t, err)

	wrong := true
	s.Candidates[1].Expect = &ExpectClause{Sound: &wrong, Cost: "log(N)"}

	mismatches := CheckExpectations(s, result)
	require.Len(t, mismatches, 2)
	assert.Contains(t, mismatches[0], "sound = false, want true")
	assert.Contains(t, mismatches[1], "cost = N, want log(N)")
}
