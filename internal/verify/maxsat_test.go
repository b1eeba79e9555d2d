package verify

import (
	"math/rand/v2"
	"testing"

	"github.com/limaJavier/ddmodels/internal/testutil"
	"github.com/limaJavier/ddmodels/pkg/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMax2SatOptimum(t *testing.T) {
	satInstance := instance.Weighted2Sat{
		NbVars: 2,
		Clauses: []instance.WeightedClause{
			{Clause: instance.Clause{A: 1, B: 1}, Weight: 5},
			{Clause: instance.Clause{A: -1, B: -1}, Weight: 3},
			{Clause: instance.Clause{A: -1, B: 2}, Weight: 4},
			{Clause: instance.Clause{A: -2, B: -2}, Weight: 1},
			{Clause: instance.Clause{A: 2, B: -2}, Weight: 2},
		},
	}

	optimum, err := Max2SatOptimum(satInstance)

	require.NoError(t, err)
	// x1 = x2 = true loses only (-1) and (-2)
	assert.Equal(t, 11, optimum)
}

func TestMax2SatOptimumKeepsLastClauseOfAPair(t *testing.T) {
	satInstance := instance.Weighted2Sat{
		NbVars: 1,
		Clauses: []instance.WeightedClause{
			{Clause: instance.Clause{A: 1, B: 1}, Weight: 10},
			{Clause: instance.Clause{A: -1, B: -1}, Weight: 4},
			{Clause: instance.Clause{A: 1, B: 1}, Weight: 1},
		},
	}

	optimum, err := Max2SatOptimum(satInstance)

	require.NoError(t, err)
	assert.Equal(t, 4, optimum)
}

func TestMax2SatOptimumMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 13))

	for range 20 {
		satInstance := testutil.GenerateWeighted2Sat(rng, rng.IntN(7)+1, rng.IntN(15), 10)

		optimum, err := Max2SatOptimum(satInstance)

		require.NoError(t, err)
		assert.Equal(t, testutil.BruteForceMax2Sat(satInstance), optimum)
	}
}

func TestMispOptimum(t *testing.T) {
	graph := instance.NewGraph(4)
	graph.AddEdge(0, 1)
	graph.AddEdge(1, 2)
	graph.AddEdge(2, 3)
	graph.Weights = []int{2, 5, 2, 0}

	optimum, err := MispOptimum(graph)

	require.NoError(t, err)
	assert.Equal(t, 5, optimum)
}

func TestMispOptimumWithoutPositiveWeights(t *testing.T) {
	graph := instance.NewGraph(2)
	graph.Weights = []int{0, -3}

	optimum, err := MispOptimum(graph)

	require.NoError(t, err)
	assert.Equal(t, 0, optimum)
}

func TestMispOptimumMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(14, 15))

	for range 20 {
		graph := testutil.GenerateGraph(rng, rng.IntN(10)+1, 0.4, 9)

		optimum, err := MispOptimum(graph)

		require.NoError(t, err)
		assert.Equal(t, testutil.BruteForceMisp(graph), optimum)
	}
}

func TestMax2SatOptimumAddsUpTautologies(t *testing.T) {
	satInstance := instance.Weighted2Sat{
		NbVars: 1,
		Clauses: []instance.WeightedClause{
			{Clause: instance.Clause{A: 1, B: -1}, Weight: 3},
			{Clause: instance.Clause{A: -1, B: 1}, Weight: 5},
			{Clause: instance.Clause{A: -1, B: -1}, Weight: 2},
		},
	}

	optimum, err := Max2SatOptimum(satInstance)

	require.NoError(t, err)
	assert.Equal(t, 10, optimum)
}
