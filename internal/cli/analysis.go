package cli

import (
	"fmt"

	"github.com/masonlang/mason/internal/compiler"
	"github.com/masonlang/mason/internal/cost"
	"github.com/masonlang/mason/internal/harness"
	"github.com/masonlang/mason/internal/layout"
	"github.com/masonlang/mason/internal/query"
	"github.com/masonlang/mason/internal/sound"
	"github.com/masonlang/mason/internal/store"
)

// analyzeForStore analyzes a scenario's candidates keeping the algebra terms
// typed, for consumers that need more than the rendered report: the store
// persists fingerprints of the typed plans, and rank reduces the typed costs.
func analyzeForStore(scenario *harness.Scenario) ([]store.Candidate, query.Query, error) {
	defs, err := compiler.LoadStructures(scenario.Specs)
	if err != nil {
		return nil, nil, err
	}
	def, err := compiler.FindStructure(defs, scenario.Structure)
	if err != nil {
		return nil, nil, err
	}
	target, ok := def.Query(scenario.Query)
	if !ok {
		return nil, nil, fmt.Errorf("structure %q has no query %q", def.Name, scenario.Query)
	}

	candidates := make([]store.Candidate, 0, len(scenario.Candidates))
	for _, c := range scenario.Candidates {
		p, err := c.Plan.Compile()
		if err != nil {
			return nil, nil, fmt.Errorf("candidate %q: %w", c.Name, err)
		}
		candidates = append(candidates, store.Candidate{
			Name:   c.Name,
			Plan:   p,
			Layout: layout.Infer(p),
			Cost:   cost.Estimate(p),
			Sound:  sound.Check(p, target.Where),
		})
	}
	return candidates, target.Where, nil
}
