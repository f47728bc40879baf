package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masonlang/mason/internal/compiler"
)

// StructureSummary is one compiled structure in the validate report.
type StructureSummary struct {
	Name    string `json:"name"`
	Fields  int    `json:"fields"`
	Queries int    `json:"queries"`
	Ops     int    `json:"ops"`
}

// ValidateReport is the validate command's success payload.
type ValidateReport struct {
	Valid      bool               `json:"valid"`
	Structures []StructureSummary `json:"structures"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <specs-dir>",
		Short: "Compile and validate structure specs",
		Long: `Compile every .cue structure spec in a directory and report what it
declares. Queries and op preconditions are checked against the record
schema; no analysis is run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	defs, err := compiler.LoadDir(specsDir)
	if err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			_ = formatter.Error(ErrCodeCompile, err.Error(), nil)
			return WrapExitError(ExitFailure, "validation failed", err)
		}
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load specs", err)
	}

	report := ValidateReport{Valid: true}
	for _, def := range defs {
		formatter.VerboseLog("Validated structure: %s", def.Name)
		report.Structures = append(report.Structures, StructureSummary{
			Name:    def.Name,
			Fields:  len(def.Record),
			Queries: len(def.Queries),
			Ops:     len(def.Ops),
		})
	}

	if opts.Format == "json" {
		return formatter.SuccessJSON(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d structure(s) valid\n", len(report.Structures))
	for _, s := range report.Structures {
		fmt.Fprintf(formatter.Writer, "  %s: %d field(s), %d query(ies), %d op(s)\n",
			s.Name, s.Fields, s.Queries, s.Ops)
	}
	return nil
}
