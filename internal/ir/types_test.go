package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masonlang/mason/internal/query"
)

func TestSchema_Types(t *testing.T) {
	s := Schema{
		{Name: "age", Type: "int"},
		{Name: "name", Type: "string"},
	}

	assert.Equal(t, map[string]string{"age": "int", "name": "string"}, s.Types())
}

func TestSchema_Has(t *testing.T) {
	s := Schema{{Name: "age", Type: "int"}}

	assert.True(t, s.Has("age"))
	assert.False(t, s.Has("name"))
}

func TestQueryDef_ArgTypes(t *testing.T) {
	q := QueryDef{
		Name: "lookup",
		Args: []NamedArg{{Name: "x", Type: "int"}, {Name: "y", Type: "string"}},
		Where: query.And{
			Left:  query.Compare{Field: "age", Op: query.Gt, Arg: "x"},
			Right: query.Compare{Field: "name", Op: query.Eq, Arg: "y"},
		},
	}

	assert.Equal(t, map[string]string{"x": "int", "y": "string"}, q.ArgTypes())
}

func TestStructureDef_Query(t *testing.T) {
	def := &StructureDef{
		Name: "Accounts",
		Queries: []QueryDef{
			{Name: "lookup"},
			{Name: "byAge"},
		},
	}

	q, ok := def.Query("byAge")
	assert.True(t, ok)
	assert.Equal(t, "byAge", q.Name)

	_, ok = def.Query("vanish")
	assert.False(t, ok)
}

func TestValidFieldTypes_NoFloats(t *testing.T) {
	assert.True(t, ValidFieldTypes["int"])
	assert.True(t, ValidFieldTypes["string"])
	assert.True(t, ValidFieldTypes["bool"])
	assert.False(t, ValidFieldTypes["float"])
	assert.False(t, ValidFieldTypes["float64"])
}
