package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/masonlang/mason/internal/ir"
	"github.com/masonlang/mason/internal/query"
)

// CompileStructure parses a CUE value into a StructureDef.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the structure struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`structure: Accounts: { ... }`)
//	def, err := CompileStructure(v.LookupPath(cue.ParsePath("structure.Accounts")))
func CompileStructure(v cue.Value) (*ir.StructureDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &ir.StructureDef{}

	// Structure name comes from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Name = labels[len(labels)-1].String()
	}

	// Record type (required).
	recordVal := v.LookupPath(cue.ParsePath("record"))
	if !recordVal.Exists() {
		return nil, &CompileError{
			Field:   "record",
			Message: "record is required",
			Pos:     v.Pos(),
		}
	}
	record, err := parseRecord(recordVal)
	if err != nil {
		return nil, err
	}
	if len(record) == 0 {
		return nil, &CompileError{
			Field:   "record",
			Message: "record must declare at least one field",
			Pos:     recordVal.Pos(),
		}
	}
	def.Record = record

	// Invariants (optional).
	def.Invariants, err = parseInvariants(v)
	if err != nil {
		return nil, err
	}

	// Queries (required, at least one - a structure nobody reads is dead
	// state).
	def.Queries, err = parseQueries(v, def.Record)
	if err != nil {
		return nil, err
	}
	if len(def.Queries) == 0 {
		return nil, &CompileError{
			Field:   "query",
			Message: "at least one query is required",
			Pos:     v.Pos(),
		}
	}

	// Ops (optional).
	def.Ops, err = parseOps(v, def.Record)
	if err != nil {
		return nil, err
	}

	return def, nil
}

// parseRecord extracts the record schema in declaration order.
func parseRecord(v cue.Value) (ir.Schema, error) {
	var schema ir.Schema

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		fieldType, err := extractTypeName(iter.Value())
		if err != nil {
			return nil, err
		}
		schema = append(schema, ir.Field{Name: iter.Label(), Type: fieldType})
	}
	return schema, nil
}

// parseInvariants extracts the optional invariant clause as a string list.
// Invariants are carried through for downstream verification stages; this
// compiler does not interpret them.
func parseInvariants(v cue.Value) ([]string, error) {
	invVal := v.LookupPath(cue.ParsePath("invariant"))
	if !invVal.Exists() {
		return nil, nil
	}

	// A single string is allowed as shorthand for a one-element list.
	if s, err := invVal.String(); err == nil {
		return []string{s}, nil
	}

	iter, err := invVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var invariants []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		invariants = append(invariants, s)
	}
	return invariants, nil
}

// parseQueries extracts query definitions and compiles their where-lists
// into acceptance predicates, validating each against the record schema.
func parseQueries(v cue.Value, record ir.Schema) ([]ir.QueryDef, error) {
	queryVal := v.LookupPath(cue.ParsePath("query"))
	if !queryVal.Exists() {
		return nil, nil
	}

	iter, err := queryVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var queries []ir.QueryDef
	for iter.Next() {
		name := iter.Label()
		queryValue := iter.Value()

		args, err := parseArgs(queryValue)
		if err != nil {
			return nil, err
		}

		where, err := parseWhere(queryValue.LookupPath(cue.ParsePath("where")))
		if err != nil {
			return nil, err
		}

		def := ir.QueryDef{Name: name, Args: args, Where: where}
		res := query.Validate(where, record.Types(), def.ArgTypes())
		if !res.OK {
			return nil, &CompileError{
				Field:   fmt.Sprintf("query.%s.where", name),
				Message: res.Problems[0],
				Pos:     queryValue.Pos(),
			}
		}

		queries = append(queries, def)
	}
	return queries, nil
}

// parseOps extracts update operation definitions. An op may carry a
// "requires" where-list as its precondition.
func parseOps(v cue.Value, record ir.Schema) ([]ir.OpDef, error) {
	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return nil, nil
	}

	iter, err := opVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var ops []ir.OpDef
	for iter.Next() {
		name := iter.Label()
		opValue := iter.Value()

		args, err := parseArgs(opValue)
		if err != nil {
			return nil, err
		}

		pre, err := parseWhere(opValue.LookupPath(cue.ParsePath("requires")))
		if err != nil {
			return nil, err
		}

		def := ir.OpDef{Name: name, Args: args, Precondition: pre}
		argTypes := make(map[string]string, len(args))
		for _, a := range args {
			argTypes[a.Name] = a.Type
		}
		res := query.Validate(pre, record.Types(), argTypes)
		if !res.OK {
			return nil, &CompileError{
				Field:   fmt.Sprintf("op.%s.requires", name),
				Message: res.Problems[0],
				Pos:     opValue.Pos(),
			}
		}

		ops = append(ops, def)
	}
	return ops, nil
}

// parseArgs extracts a named, typed argument list in declaration order.
func parseArgs(v cue.Value) ([]ir.NamedArg, error) {
	argsVal := v.LookupPath(cue.ParsePath("args"))
	if !argsVal.Exists() {
		return nil, nil
	}

	iter, err := argsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var args []ir.NamedArg
	for iter.Next() {
		argType, err := extractTypeName(iter.Value())
		if err != nil {
			return nil, err
		}
		args = append(args, ir.NamedArg{Name: iter.Label(), Type: argType})
	}
	return args, nil
}

// parseWhere compiles a where-list into an acceptance predicate: each list
// element is an atomic comparison, and the list is their conjunction,
// compiled to a right-nested And chain. A missing or empty list means
// "accept everything".
func parseWhere(v cue.Value) (query.Query, error) {
	if !v.Exists() {
		return query.MatchAll{}, nil
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var conjuncts []query.Query
	for iter.Next() {
		c, err := parseComparison(iter.Value())
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, c)
	}

	if len(conjuncts) == 0 {
		return query.MatchAll{}, nil
	}
	q := conjuncts[len(conjuncts)-1]
	for i := len(conjuncts) - 2; i >= 0; i-- {
		q = query.And{Left: conjuncts[i], Right: q}
	}
	return q, nil
}

// parseComparison compiles one { field, op, arg } struct.
func parseComparison(v cue.Value) (query.Query, error) {
	field, err := lookupString(v, "field")
	if err != nil {
		return nil, err
	}
	opName, err := lookupString(v, "op")
	if err != nil {
		return nil, err
	}
	arg, err := lookupString(v, "arg")
	if err != nil {
		return nil, err
	}

	var op query.Op
	switch opName {
	case "eq":
		op = query.Eq
	case "gt":
		op = query.Gt
	default:
		return nil, &CompileError{
			Field:   "where.op",
			Message: fmt.Sprintf("unsupported operator %q: must be eq or gt", opName),
			Pos:     v.Pos(),
		}
	}

	return query.Compare{Field: field, Op: op, Arg: arg}, nil
}

// lookupString reads a required string member of a CUE struct.
func lookupString(v cue.Value, name string) (string, error) {
	member := v.LookupPath(cue.ParsePath(name))
	if !member.Exists() {
		return "", &CompileError{
			Field:   "where." + name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := member.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// extractTypeName converts a CUE type to an IR type string.
// Floats are forbidden: plan soundness must not depend on rounding.
func extractTypeName(v cue.Value) (string, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return "string", nil
	case cue.IntKind:
		return "int", nil
	case cue.BoolKind:
		return "bool", nil
	case cue.FloatKind, cue.NumberKind:
		return "", &CompileError{
			Field:   "type",
			Message: "float types are forbidden - use int instead",
			Pos:     v.Pos(),
		}
	default:
		return "", &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
