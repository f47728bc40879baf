package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/masonlang/mason/internal/plan"
	"github.com/masonlang/mason/internal/query"
)

// Scenario defines a conformance test scenario.
// Scenarios analyze candidate plans against one query of a compiled
// structure and assert on the resulting verdicts.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs lists paths to CUE spec files to compile and load.
	// Paths are relative to the scenario file location.
	Specs []string `yaml:"specs"`

	// Structure names the structure under analysis.
	Structure string `yaml:"structure"`

	// Query names the target query within the structure.
	Query string `yaml:"query"`

	// Candidates are the plans to analyze.
	Candidates []CandidateSpec `yaml:"candidates"`
}

// CandidateSpec is one candidate plan with optional expected verdicts.
type CandidateSpec struct {
	// Name identifies the candidate within the scenario.
	Name string `yaml:"name"`

	// Plan is the candidate plan tree.
	Plan PlanNode `yaml:"plan"`

	// Expect specifies expected analysis verdicts.
	// If nil, the candidate is analyzed but not asserted on (golden files
	// still capture its verdicts).
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected analysis verdicts. Layout and Cost compare
// against the rendered form; unset fields are not checked.
type ExpectClause struct {
	Layout string `yaml:"layout,omitempty"`
	Sound  *bool  `yaml:"sound,omitempty"`
	Cost   string `yaml:"cost,omitempty"`
}

// PlanNode is the YAML surface form of a plan tree. Exactly one member must
// be set, e.g.:
//
//	plan:
//	  intersect:
//	    left: {binarySearch: {field: age, op: gt, arg: x}}
//	    right: {hashLookup: {field: name, arg: y}}
type PlanNode struct {
	All          *struct{}         `yaml:"all,omitempty"`
	None         *struct{}         `yaml:"none,omitempty"`
	HashLookup   *HashLookupNode   `yaml:"hashLookup,omitempty"`
	BinarySearch *BinarySearchNode `yaml:"binarySearch,omitempty"`
	Filter       *FilterNode       `yaml:"filter,omitempty"`
	SubPlan      *SubPlanNode      `yaml:"subPlan,omitempty"`
	Intersect    *IntersectNode    `yaml:"intersect,omitempty"`
}

type HashLookupNode struct {
	Field string `yaml:"field"`
	Arg   string `yaml:"arg"`
}

type BinarySearchNode struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Arg   string `yaml:"arg"`
}

type FilterNode struct {
	Source PlanNode  `yaml:"source"`
	Pred   QueryNode `yaml:"pred"`
}

type SubPlanNode struct {
	Outer PlanNode `yaml:"outer"`
	Inner PlanNode `yaml:"inner"`
}

type IntersectNode struct {
	Left  PlanNode `yaml:"left"`
	Right PlanNode `yaml:"right"`
}

// QueryNode is the YAML surface form of a query tree. Exactly one member
// must be set.
type QueryNode struct {
	MatchAll  *struct{}     `yaml:"matchAll,omitempty"`
	MatchNone *struct{}     `yaml:"matchNone,omitempty"`
	Compare   *CompareNode  `yaml:"compare,omitempty"`
	And       *AndQueryNode `yaml:"and,omitempty"`
}

type CompareNode struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Arg   string `yaml:"arg"`
}

type AndQueryNode struct {
	Left  QueryNode `yaml:"left"`
	Right QueryNode `yaml:"right"`
}

// Compile converts the YAML surface form into a plan tree.
func (n PlanNode) Compile() (plan.Plan, error) {
	if err := n.checkOneOf(); err != nil {
		return nil, err
	}
	switch {
	case n.All != nil:
		return plan.All{}, nil
	case n.None != nil:
		return plan.None{}, nil
	case n.HashLookup != nil:
		return plan.HashLookup{Field: n.HashLookup.Field, Arg: n.HashLookup.Arg}, nil
	case n.BinarySearch != nil:
		op, err := parseOp(n.BinarySearch.Op)
		if err != nil {
			return nil, err
		}
		return plan.BinarySearch{Field: n.BinarySearch.Field, Op: op, Arg: n.BinarySearch.Arg}, nil
	case n.Filter != nil:
		source, err := n.Filter.Source.Compile()
		if err != nil {
			return nil, err
		}
		pred, err := n.Filter.Pred.Compile()
		if err != nil {
			return nil, err
		}
		return plan.Filter{Source: source, Pred: pred}, nil
	case n.SubPlan != nil:
		outer, err := n.SubPlan.Outer.Compile()
		if err != nil {
			return nil, err
		}
		inner, err := n.SubPlan.Inner.Compile()
		if err != nil {
			return nil, err
		}
		return plan.SubPlan{Outer: outer, Inner: inner}, nil
	case n.Intersect != nil:
		left, err := n.Intersect.Left.Compile()
		if err != nil {
			return nil, err
		}
		right, err := n.Intersect.Right.Compile()
		if err != nil {
			return nil, err
		}
		return plan.Intersect{Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("plan node is empty: exactly one variant must be set")
}

func (n PlanNode) checkOneOf() error {
	count := 0
	for _, set := range []bool{
		n.All != nil, n.None != nil, n.HashLookup != nil, n.BinarySearch != nil,
		n.Filter != nil, n.SubPlan != nil, n.Intersect != nil,
	} {
		if set {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("plan node sets %d variants: exactly one must be set", count)
	}
	return nil
}

// Compile converts the YAML surface form into a query tree.
func (n QueryNode) Compile() (query.Query, error) {
	if err := n.checkOneOf(); err != nil {
		return nil, err
	}
	switch {
	case n.MatchAll != nil:
		return query.MatchAll{}, nil
	case n.MatchNone != nil:
		return query.MatchNone{}, nil
	case n.Compare != nil:
		op, err := parseOp(n.Compare.Op)
		if err != nil {
			return nil, err
		}
		return query.Compare{Field: n.Compare.Field, Op: op, Arg: n.Compare.Arg}, nil
	case n.And != nil:
		left, err := n.And.Left.Compile()
		if err != nil {
			return nil, err
		}
		right, err := n.And.Right.Compile()
		if err != nil {
			return nil, err
		}
		return query.And{Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("query node is empty: exactly one variant must be set")
}

func (n QueryNode) checkOneOf() error {
	count := 0
	for _, set := range []bool{
		n.MatchAll != nil, n.MatchNone != nil, n.Compare != nil, n.And != nil,
	} {
		if set {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("query node sets %d variants: exactly one must be set", count)
	}
	return nil
}

func parseOp(name string) (query.Op, error) {
	switch name {
	case "eq":
		return query.Eq, nil
	case "gt":
		return query.Gt, nil
	default:
		return 0, fmt.Errorf("unsupported operator %q: must be eq or gt", name)
	}
}

// LoadScenario reads and parses a scenario YAML file. Spec paths are
// resolved relative to the scenario file's directory.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "candidate:" vs "candidates:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, specPath := range scenario.Specs {
		if !filepath.IsAbs(specPath) {
			scenario.Specs[i] = filepath.Join(base, specPath)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Specs) == 0 {
		return fmt.Errorf("specs list is required and must be non-empty")
	}
	if s.Structure == "" {
		return fmt.Errorf("structure is required")
	}
	if s.Query == "" {
		return fmt.Errorf("query is required")
	}
	if len(s.Candidates) == 0 {
		return fmt.Errorf("candidates list is required and must be non-empty")
	}

	for _, specPath := range s.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return fmt.Errorf("spec file not found: %s", specPath)
		}
	}

	seen := make(map[string]bool, len(s.Candidates))
	for i, c := range s.Candidates {
		if c.Name == "" {
			return fmt.Errorf("candidates[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("candidates[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
		if _, err := c.Plan.Compile(); err != nil {
			return fmt.Errorf("candidates[%d] (%s): %w", i, c.Name, err)
		}
	}

	return nil
}
