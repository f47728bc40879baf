package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	testFields = map[string]string{"age": "int", "name": "string"}
	testArgs   = map[string]string{"x": "int", "y": "string"}
)

func TestValidate_WellFormed(t *testing.T) {
	q := And{
		Left:  Compare{Field: "age", Op: Gt, Arg: "x"},
		Right: Compare{Field: "name", Op: Eq, Arg: "y"},
	}

	res := Validate(q, testFields, testArgs)
	assert.True(t, res.OK)
	assert.Empty(t, res.Problems)
}

func TestValidate_TrivialQueries(t *testing.T) {
	assert.True(t, Validate(MatchAll{}, nil, nil).OK)
	assert.True(t, Validate(MatchNone{}, nil, nil).OK)
}

func TestValidate_UnknownField(t *testing.T) {
	q := Compare{Field: "height", Op: Gt, Arg: "x"}

	res := Validate(q, testFields, testArgs)
	assert.False(t, res.OK)
	assert.Len(t, res.Problems, 1)
	assert.Contains(t, res.Problems[0], `"height"`)
}

func TestValidate_UnboundVariable(t *testing.T) {
	q := Compare{Field: "age", Op: Gt, Arg: "z"}

	res := Validate(q, testFields, testArgs)
	assert.False(t, res.OK)
	assert.Len(t, res.Problems, 1)
	assert.Contains(t, res.Problems[0], `"z"`)
}

func TestValidate_TypeMismatch(t *testing.T) {
	q := Compare{Field: "age", Op: Eq, Arg: "y"} // int field vs string arg

	res := Validate(q, testFields, testArgs)
	assert.False(t, res.OK)
	assert.Len(t, res.Problems, 1)
	assert.Contains(t, res.Problems[0], "type")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	q := And{
		Left:  Compare{Field: "height", Op: Gt, Arg: "x"},
		Right: Compare{Field: "name", Op: Eq, Arg: "missing"},
	}

	res := Validate(q, testFields, testArgs)
	assert.False(t, res.OK)
	assert.Len(t, res.Problems, 2)
}
