// Package harness runs declarative conformance scenarios against the plan
// analyses.
//
// A scenario is a YAML file naming a compiled structure specification, one of
// its queries, and a set of candidate plans. Running the scenario analyzes
// every candidate (required layout, soundness, symbolic cost) and checks the
// verdicts against the scenario's expectations. Golden files capture the full
// analysis report so behavioral drift in any analysis shows up as a diff.
package harness
