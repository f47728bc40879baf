package ir

import "github.com/masonlang/mason/internal/query"

// StructureDef represents a compiled data-structure specification.
//
// A specification declares a record type, invariant-constrained state, a set
// of declarative queries over that state, and update operations. The
// synthesizer's job is to find, for each query, the cheapest sound plan; this
// package only carries the compiled form, it performs no analysis.
type StructureDef struct {
	Name       string     `json:"name"`
	Record     Schema     `json:"record"`
	Invariants []string   `json:"invariants,omitempty"`
	Queries    []QueryDef `json:"queries"`
	Ops        []OpDef    `json:"ops,omitempty"`
}

// Query returns the named query declaration, if present.
func (d *StructureDef) Query(name string) (QueryDef, bool) {
	for _, q := range d.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return QueryDef{}, false
}

// Schema is the ordered field list of a record type.
type Schema []Field

// Field is one typed record field.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"` // "int", "string" or "bool"
}

// Types returns the schema as a field-name to type-name map.
func (s Schema) Types() map[string]string {
	m := make(map[string]string, len(s))
	for _, f := range s {
		m[f.Name] = f.Type
	}
	return m
}

// Has reports whether the schema declares a field with the given name.
func (s Schema) Has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// QueryDef represents one declarative query of a specification: a named,
// typed argument list and the acceptance predicate records must satisfy.
type QueryDef struct {
	Name  string      `json:"name"`
	Args  []NamedArg  `json:"args,omitempty"`
	Where query.Query `json:"-"`
}

// ArgTypes returns the query arguments as a name to type-name map.
func (q QueryDef) ArgTypes() map[string]string {
	m := make(map[string]string, len(q.Args))
	for _, a := range q.Args {
		m[a.Name] = a.Type
	}
	return m
}

// OpDef represents an update operation mutating structure state. Ops are
// carried through compilation for completeness; plan analysis only concerns
// queries.
type OpDef struct {
	Name         string      `json:"name"`
	Args         []NamedArg  `json:"args,omitempty"`
	Precondition query.Query `json:"-"`
}

// NamedArg is a named, typed argument.
type NamedArg struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ValidFieldTypes defines the allowed record field and argument types.
// Floats are deliberately absent: comparisons on inexact types would make
// plan soundness depend on rounding behavior.
var ValidFieldTypes = map[string]bool{
	"int":    true,
	"string": true,
	"bool":   true,
}
