package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masonlang/mason/internal/plan"
	"github.com/masonlang/mason/internal/query"
)

func TestEvaluate_Basic(t *testing.T) {
	tests := []struct {
		name string
		c    Cost
		n    float64
		want float64
	}{
		{"cardinality", Cardinality{}, 1024, 1024},
		{"factor", Factor{Num: 1, Den: 2}, 1024, 0.5},
		{"log", Log{Of: Cardinality{}}, 1024, 10},
		{"times", Times{Left: Cardinality{}, Right: FactorOf(3)}, 10, 30},
		{"plus", Plus{Left: FactorOf(1), Right: FactorOf(2)}, 10, 3},
		{"log_clamps_at_zero", Log{Of: FactorOf(0)}, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Evaluate(tt.c, tt.n), 1e-9)
		})
	}
}

func TestEvaluate_RanksIndexOverScan(t *testing.T) {
	scan := Estimate(plan.All{})
	lookup := Estimate(plan.HashLookup{Field: "name", Arg: "y"})
	search := Estimate(plan.BinarySearch{Field: "age", Op: query.Gt, Arg: "x"})

	n := 1 << 20
	assert.Less(t, Evaluate(lookup, float64(n)), Evaluate(search, float64(n)))
	assert.Less(t, Evaluate(search, float64(n)), Evaluate(scan, float64(n)))
}

func TestCompare_Ordering(t *testing.T) {
	cheap := FactorOf(1)
	expensive := Cardinality{}

	assert.Equal(t, -1, Compare(cheap, expensive, 100))
	assert.Equal(t, 1, Compare(expensive, cheap, 100))
	assert.Equal(t, 0, Compare(cheap, FactorOf(1), 100))
}
