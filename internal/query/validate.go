package query

import "fmt"

// ValidationResult reports construction-time well-formedness of a query.
//
// The analyses in the layout, sound and cost packages assume well-formed
// inputs and never re-check them; a malformed tree is a caller error. This
// advisory check exists so front-ends and tests can surface those errors
// before handing a query to the synthesizer.
type ValidationResult struct {
	// OK is true when every referenced field exists on the record type and
	// every comparison variable is bound.
	OK bool

	// Problems lists each violation found. Empty when OK is true.
	Problems []string
}

// Validate checks that every Compare node names a field declared on the
// record type and a variable bound by the query's argument list, and that
// the field and variable agree on type.
//
// fields maps record field names to type names; args maps bound variable
// names to type names. Validate is a pure function with no side effects.
func Validate(q Query, fields, args map[string]string) ValidationResult {
	v := &validator{fields: fields, args: args}
	v.walk(q)
	return ValidationResult{
		OK:       len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	fields   map[string]string
	args     map[string]string
	problems []string
}

func (v *validator) addProblem(format string, a ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, a...))
}

func (v *validator) walk(q Query) {
	switch n := q.(type) {
	case MatchAll, MatchNone:
		// No fields, no variables.
	case Compare:
		v.checkCompare(n)
	case And:
		v.walk(n.Left)
		v.walk(n.Right)
	default:
		panic(fmt.Sprintf("unhandled query node %T", q))
	}
}

func (v *validator) checkCompare(c Compare) {
	fieldType, haveField := v.fields[c.Field]
	if !haveField {
		v.addProblem("field %q is not declared on the record type", c.Field)
	}
	argType, haveArg := v.args[c.Arg]
	if !haveArg {
		v.addProblem("variable %q is not bound", c.Arg)
	}
	if haveField && haveArg && fieldType != argType {
		v.addProblem("field %q has type %s but variable %q has type %s",
			c.Field, fieldType, c.Arg, argType)
	}
}
