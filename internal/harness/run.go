package harness

import (
	"fmt"

	"github.com/masonlang/mason/internal/compiler"
	"github.com/masonlang/mason/internal/cost"
	"github.com/masonlang/mason/internal/layout"
	"github.com/masonlang/mason/internal/plan"
	"github.com/masonlang/mason/internal/query"
	"github.com/masonlang/mason/internal/sound"
)

// Result is the full analysis report for one scenario run.
type Result struct {
	Scenario   string            `json:"scenario"`
	Structure  string            `json:"structure"`
	Query      string            `json:"query"`
	Target     string            `json:"target"`
	Candidates []CandidateResult `json:"candidates"`
}

// CandidateResult carries the verdicts of the three analyses for one
// candidate, in rendered form.
type CandidateResult struct {
	Name        string `json:"name"`
	Plan        string `json:"plan"`
	Fingerprint string `json:"fingerprint"`
	Layout      string `json:"layout"`
	Sound       bool   `json:"sound"`
	Cost        string `json:"cost"`
}

// Run loads the scenario's specs, resolves the target query, and analyzes
// every candidate plan. Candidates that fail validation against the record
// schema abort the run; expectation mismatches do not (see CheckExpectations).
func Run(scenario *Scenario) (*Result, error) {
	defs, err := compiler.LoadStructures(scenario.Specs)
	if err != nil {
		return nil, fmt.Errorf("failed to load specs: %w", err)
	}

	def, err := compiler.FindStructure(defs, scenario.Structure)
	if err != nil {
		return nil, err
	}
	target, ok := def.Query(scenario.Query)
	if !ok {
		return nil, fmt.Errorf("structure %q has no query %q", def.Name, scenario.Query)
	}

	result := &Result{
		Scenario:  scenario.Name,
		Structure: def.Name,
		Query:     target.Name,
		Target:    query.String(target.Where),
	}

	fields := def.Record.Types()
	args := target.ArgTypes()
	for _, c := range scenario.Candidates {
		p, err := c.Plan.Compile()
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", c.Name, err)
		}
		if res := plan.Validate(p, fields, args); !res.OK {
			return nil, fmt.Errorf("candidate %q: invalid plan: %s", c.Name, res.Problems[0])
		}

		result.Candidates = append(result.Candidates, CandidateResult{
			Name:        c.Name,
			Plan:        plan.String(p),
			Fingerprint: plan.Fingerprint(p),
			Layout:      layout.String(layout.Infer(p)),
			Sound:       sound.Check(p, target.Where),
			Cost:        cost.String(cost.Estimate(p)),
		})
	}

	return result, nil
}

// CheckExpectations compares a run's verdicts against the scenario's expect
// clauses. Returns one message per mismatch; empty means all expectations
// held.
func CheckExpectations(scenario *Scenario, result *Result) []string {
	byName := make(map[string]CandidateResult, len(result.Candidates))
	for _, c := range result.Candidates {
		byName[c.Name] = c
	}

	var mismatches []string
	for _, c := range scenario.Candidates {
		if c.Expect == nil {
			continue
		}
		got, ok := byName[c.Name]
		if !ok {
			mismatches = append(mismatches,
				fmt.Sprintf("%s: no result for candidate", c.Name))
			continue
		}
		if c.Expect.Layout != "" && got.Layout != c.Expect.Layout {
			mismatches = append(mismatches,
				fmt.Sprintf("%s: layout = %s, want %s", c.Name, got.Layout, c.Expect.Layout))
		}
		if c.Expect.Sound != nil && got.Sound != *c.Expect.Sound {
			mismatches = append(mismatches,
				fmt.Sprintf("%s: sound = %t, want %t", c.Name, got.Sound, *c.Expect.Sound))
		}
		if c.Expect.Cost != "" && got.Cost != c.Expect.Cost {
			mismatches = append(mismatches,
				fmt.Sprintf("%s: cost = %s, want %s", c.Name, got.Cost, c.Expect.Cost))
		}
	}
	return mismatches
}
