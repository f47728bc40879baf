package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masonlang/mason/internal/query"
)

func TestString_Rendering(t *testing.T) {
	tests := []struct {
		name string
		p    Plan
		want string
	}{
		{"all", All{}, "all"},
		{"none", None{}, "none"},
		{"hash_lookup", HashLookup{Field: "name", Arg: "y"}, "hashLookup(name, y)"},
		{"binary_search", BinarySearch{Field: "age", Op: query.Gt, Arg: "x"}, "binarySearch(age gt x)"},
		{
			"filter",
			Filter{Source: All{}, Pred: query.Compare{Field: "name", Op: query.Eq, Arg: "y"}},
			"filter(all, name eq y)",
		},
		{
			"sub_plan",
			SubPlan{
				Outer: HashLookup{Field: "name", Arg: "y"},
				Inner: BinarySearch{Field: "age", Op: query.Gt, Arg: "x"},
			},
			"subPlan(hashLookup(name, y), binarySearch(age gt x))",
		},
		{
			"intersect",
			Intersect{
				Left:  BinarySearch{Field: "age", Op: query.Gt, Arg: "x"},
				Right: HashLookup{Field: "name", Arg: "y"},
			},
			"intersect(binarySearch(age gt x), hashLookup(name, y))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.p))
		})
	}
}

func TestPlan_StructuralEquality(t *testing.T) {
	p1 := Intersect{
		Left:  BinarySearch{Field: "age", Op: query.Gt, Arg: "x"},
		Right: HashLookup{Field: "name", Arg: "y"},
	}
	p2 := Intersect{
		Left:  BinarySearch{Field: "age", Op: query.Gt, Arg: "x"},
		Right: HashLookup{Field: "name", Arg: "y"},
	}

	assert.True(t, p1 == p2)
	assert.False(t, Plan(All{}) == Plan(None{}))
}
