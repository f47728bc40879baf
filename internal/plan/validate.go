package plan

import (
	"fmt"

	"github.com/masonlang/mason/internal/query"
)

// Validate checks that every access node of the plan names a field declared
// on the record type and a variable bound by the target query's argument
// list, and that filter predicates are well-formed against the same schema.
//
// fields maps record field names to type names; args maps bound variable
// names to type names. Like query.Validate this is advisory: the analyses
// assume well-formed plans and never re-check.
func Validate(p Plan, fields, args map[string]string) query.ValidationResult {
	v := &validator{fields: fields, args: args}
	v.walk(p)
	return query.ValidationResult{
		OK:       len(v.problems) == 0,
		Problems: v.problems,
	}
}

type validator struct {
	fields   map[string]string
	args     map[string]string
	problems []string
}

func (v *validator) addProblem(format string, a ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, a...))
}

func (v *validator) walk(p Plan) {
	switch n := p.(type) {
	case All, None:
		// No fields, no variables.
	case HashLookup:
		v.checkAccess(n.Field, n.Arg)
	case BinarySearch:
		v.checkAccess(n.Field, n.Arg)
	case Filter:
		v.walk(n.Source)
		res := query.Validate(n.Pred, v.fields, v.args)
		v.problems = append(v.problems, res.Problems...)
	case SubPlan:
		v.walk(n.Outer)
		v.walk(n.Inner)
	case Intersect:
		v.walk(n.Left)
		v.walk(n.Right)
	default:
		panic(fmt.Sprintf("unhandled plan node %T", p))
	}
}

func (v *validator) checkAccess(field, arg string) {
	fieldType, haveField := v.fields[field]
	if !haveField {
		v.addProblem("field %q is not declared on the record type", field)
	}
	argType, haveArg := v.args[arg]
	if !haveArg {
		v.addProblem("variable %q is not bound", arg)
	}
	if haveField && haveArg && fieldType != argType {
		v.addProblem("field %q has type %s but variable %q has type %s",
			field, fieldType, arg, argType)
	}
}
