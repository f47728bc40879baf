package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonlang/mason/internal/plan"
	"github.com/masonlang/mason/internal/query"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/accounts-lookup.yaml")
	require.NoError(t, err)

	assert.Equal(t, "accounts-lookup", s.Name)
	assert.Equal(t, "Accounts", s.Structure)
	assert.Equal(t, "lookup", s.Query)
	require.Len(t, s.Candidates, 4)

	// Spec paths resolve relative to the scenario file.
	assert.Equal(t, filepath.Join("testdata", "scenarios", "..", "specs", "accounts.cue"), s.Specs[0])
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/no-such.yaml")
	require.Error(t, err)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: misspelled candidates key
specs: [spec.cue]
structure: Accounts
query: lookup
candidate:
  - name: a
    plan: {all: {}}
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candidate")
}

func TestLoadScenario_MissingCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spec.cue"), []byte("structure: {}"), 0o644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: empty
description: no candidates
specs: [spec.cue]
structure: Accounts
query: lookup
candidates: []
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candidates")
}

func TestLoadScenario_SpecFileMustExist(t *testing.T) {
	path := writeScenario(t, `
name: missing-spec
description: references a spec that does not exist
specs: [nope.cue]
structure: Accounts
query: lookup
candidates:
  - name: a
    plan: {all: {}}
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec file not found")
}

func TestPlanNode_CompileLeaves(t *testing.T) {
	all, err := (PlanNode{All: &struct{}{}}).Compile()
	require.NoError(t, err)
	assert.Equal(t, plan.Plan(plan.All{}), all)

	hash, err := (PlanNode{HashLookup: &HashLookupNode{Field: "name", Arg: "y"}}).Compile()
	require.NoError(t, err)
	assert.Equal(t, plan.Plan(plan.HashLookup{Field: "name", Arg: "y"}), hash)

	search, err := (PlanNode{BinarySearch: &BinarySearchNode{Field: "age", Op: "gt", Arg: "x"}}).Compile()
	require.NoError(t, err)
	assert.Equal(t, plan.Plan(plan.BinarySearch{Field: "age", Op: query.Gt, Arg: "x"}), search)
}

func TestPlanNode_CompileEmptyFails(t *testing.T) {
	_, err := (PlanNode{}).Compile()
	require.Error(t, err)
}

func TestPlanNode_CompileTwoVariantsFails(t *testing.T) {
	_, err := (PlanNode{All: &struct{}{}, None: &struct{}{}}).Compile()
	require.Error(t, err)
}

func TestPlanNode_CompileBadOperator(t *testing.T) {
	_, err := (PlanNode{BinarySearch: &BinarySearchNode{Field: "age", Op: "lt", Arg: "x"}}).Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"lt"`)
}

func TestQueryNode_CompileNested(t *testing.T) {
	node := QueryNode{And: &AndQueryNode{
		Left:  QueryNode{Compare: &CompareNode{Field: "age", Op: "gt", Arg: "x"}},
		Right: QueryNode{MatchAll: &struct{}{}},
	}}
	q, err := node.Compile()
	require.NoError(t, err)
	assert.Equal(t, query.Query(query.And{
		Left:  query.Compare{Field: "age", Op: query.Gt, Arg: "x"},
		Right: query.MatchAll{},
	}), q)
}
