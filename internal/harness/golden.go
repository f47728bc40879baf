package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, fails the test on any expectation
// mismatch, and compares the full analysis report against a golden file at
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}

	for _, mismatch := range CheckExpectations(scenario, result) {
		t.Errorf("scenario %s: %s", scenario.Name, mismatch)
	}

	AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an analysis report against the golden file named
// after the scenario. Struct field order makes the JSON deterministic.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	report, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, report)
}
