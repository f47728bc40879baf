package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/masonlang/mason/internal/cost"
	"github.com/masonlang/mason/internal/harness"
	"github.com/masonlang/mason/internal/layout"
	"github.com/masonlang/mason/internal/plan"
	"github.com/masonlang/mason/internal/query"
	"github.com/masonlang/mason/internal/store"
)

// RankedCandidate is one sound candidate with its cost reduced at the chosen
// cardinality.
type RankedCandidate struct {
	Name    string  `json:"name"`
	Plan    string  `json:"plan"`
	Layout  string  `json:"layout"`
	Cost    string  `json:"cost"`
	Reduced float64 `json:"reduced"`
}

// RankReport is the rank command's success payload.
type RankReport struct {
	Scenario    string            `json:"scenario"`
	Structure   string            `json:"structure"`
	Query       string            `json:"query"`
	Target      string            `json:"target"`
	Cardinality float64           `json:"cardinality"`
	Ranked      []RankedCandidate `json:"ranked"`
	Unsound     []string          `json:"unsound,omitempty"`
}

// NewRankCommand creates the rank command.
func NewRankCommand(rootOpts *RootOptions) *cobra.Command {
	var cardinality float64

	cmd := &cobra.Command{
		Use:   "rank <scenario.yaml>",
		Short: "Rank a scenario's sound candidates by cost",
		Long: `Analyze a scenario's candidates, drop the unsound ones, and order the
rest by their symbolic cost evaluated at a chosen cardinality. The
reduction is a ranking policy layered on top of the estimator; the
symbolic costs themselves are reported unchanged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(rootOpts, args[0], cardinality, cmd)
		},
	}

	cmd.Flags().Float64VarP(&cardinality, "cardinality", "n", 1000, "assumed number of records")

	return cmd
}

func runRank(opts *RootOptions, scenarioPath string, cardinality float64, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if cardinality <= 0 {
		err := fmt.Errorf("cardinality must be positive, got %g", cardinality)
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid cardinality", err)
	}

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	candidates, target, err := analyzeForStore(scenario)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "analysis failed", err)
	}

	report := buildRankReport(scenario, candidates, target, cardinality)
	formatter.VerboseLog("Ranked %d of %d candidate(s)", len(report.Ranked), len(candidates))

	if opts.Format == "json" {
		return formatter.SuccessJSON(report)
	}

	fmt.Fprintf(formatter.Writer, "%s: %s.%s at N=%g\n",
		report.Scenario, report.Structure, report.Query, report.Cardinality)
	for i, r := range report.Ranked {
		fmt.Fprintf(formatter.Writer, "  %d. %s: %s  cost %s = %g\n",
			i+1, r.Name, r.Plan, r.Cost, r.Reduced)
	}
	for _, name := range report.Unsound {
		fmt.Fprintf(formatter.Writer, "  -- %s: unsound, not ranked\n", name)
	}

	if len(report.Ranked) == 0 {
		return NewExitError(ExitFailure, "no sound candidates")
	}
	return nil
}

// buildRankReport drops unsound candidates and orders the rest by reduced
// cost, then by name for a stable order among ties.
func buildRankReport(scenario *harness.Scenario, candidates []store.Candidate, target query.Query, cardinality float64) *RankReport {
	report := &RankReport{
		Scenario:    scenario.Name,
		Structure:   scenario.Structure,
		Query:       scenario.Query,
		Target:      query.String(target),
		Cardinality: cardinality,
	}

	for _, c := range candidates {
		if !c.Sound {
			report.Unsound = append(report.Unsound, c.Name)
			continue
		}
		report.Ranked = append(report.Ranked, RankedCandidate{
			Name:    c.Name,
			Plan:    plan.String(c.Plan),
			Layout:  layout.String(c.Layout),
			Cost:    cost.String(c.Cost),
			Reduced: cost.Evaluate(c.Cost, cardinality),
		})
	}

	sort.SliceStable(report.Ranked, func(i, j int) bool {
		if report.Ranked[i].Reduced != report.Ranked[j].Reduced {
			return report.Ranked[i].Reduced < report.Ranked[j].Reduced
		}
		return report.Ranked[i].Name < report.Ranked[j].Name
	})

	return report
}
