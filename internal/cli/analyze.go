package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masonlang/mason/internal/harness"
	"github.com/masonlang/mason/internal/store"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "analyze <scenario.yaml>",
		Short: "Analyze a scenario's candidate plans",
		Long: `Run the three analyses (required layout, soundness, symbolic cost) over
every candidate plan of a scenario and report the verdicts. Expectation
mismatches fail the command with exit code 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, args[0], dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "persist the run to a SQLite database at this path")

	return cmd
}

func runAnalyze(opts *RootOptions, scenarioPath, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	formatter.VerboseLog("Loaded scenario %s with %d candidate(s)", scenario.Name, len(scenario.Candidates))

	result, err := harness.Run(scenario)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "analysis failed", err)
	}

	if dbPath != "" {
		runID, err := persistRun(cmd, scenario, dbPath)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
		formatter.VerboseLog("Persisted run %s to %s", runID, dbPath)
	}

	mismatches := harness.CheckExpectations(scenario, result)

	if opts.Format == "json" {
		if len(mismatches) > 0 {
			_ = formatter.Error(ErrCodeScenario,
				fmt.Sprintf("%d expectation(s) failed", len(mismatches)), mismatches)
			return NewExitError(ExitFailure, "expectations failed")
		}
		return formatter.SuccessJSON(result)
	}

	fmt.Fprintf(formatter.Writer, "%s: %s.%s matching %s\n",
		result.Scenario, result.Structure, result.Query, result.Target)
	for _, c := range result.Candidates {
		verdict := "unsound"
		if c.Sound {
			verdict = "sound"
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", c.Name, c.Plan)
		fmt.Fprintf(formatter.Writer, "    layout: %s\n", c.Layout)
		fmt.Fprintf(formatter.Writer, "    %s, cost %s\n", verdict, c.Cost)
	}

	if len(mismatches) > 0 {
		fmt.Fprintf(formatter.Writer, "✗ %d expectation(s) failed\n", len(mismatches))
		for _, m := range mismatches {
			fmt.Fprintf(formatter.Writer, "  %s\n", m)
		}
		return NewExitError(ExitFailure, "expectations failed")
	}
	return nil
}

// persistRun re-derives the analysis verdicts as store candidates and saves
// them in one transaction.
func persistRun(cmd *cobra.Command, scenario *harness.Scenario, dbPath string) (string, error) {
	candidates, _, err := analyzeForStore(scenario)
	if err != nil {
		return "", err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer s.Close()

	return s.SaveRun(cmd.Context(), scenario.Structure, scenario.Query, candidates)
}
