package dp

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capacity int

func (c capacity) Key() string { return strconv.Itoa(int(c)) }

// knapsack is a 0/1 knapsack whose state is the remaining capacity
type knapsack struct {
	capacity int
	weights  []int
	profits  []int
}

func (k *knapsack) NbVars() int { return len(k.weights) }
func (k *knapsack) InitialState() capacity { return capacity(k.capacity) }
func (k *knapsack) InitialValue() int { return 0 }

func (k *knapsack) DomainOf(state capacity, variable Variable) []int {
	if k.weights[variable] <= int(state) {
		return []int{1, 0}
	}
	return []int{0}
}

func (k *knapsack) Transition(state capacity, _ VarSet, decision Decision) capacity {
	return state - capacity(decision.Value*k.weights[decision.Variable])
}

func (k *knapsack) TransitionCost(_ capacity, _ VarSet, decision Decision) int {
	return decision.Value * k.profits[decision.Variable]
}

// impactedKnapsack only lets items that still fit change the state
type impactedKnapsack struct {
	knapsack
	transitions int
}

func (k *impactedKnapsack) ImpactedBy(state capacity, variable Variable) bool {
	return k.weights[variable] <= int(state)
}

func (k *impactedKnapsack) Transition(state capacity, vars VarSet, decision Decision) capacity {
	k.transitions++
	return k.knapsack.Transition(state, vars, decision)
}

func bruteForceKnapsack(k *knapsack) int {
	best := 0
	for mask := range 1 << len(k.weights) {
		weight, profit := 0, 0
		for i := range k.weights {
			if mask&(1<<i) != 0 {
				weight += k.weights[i]
				profit += k.profits[i]
			}
		}
		if weight <= k.capacity && profit > best {
			best = profit
		}
	}
	return best
}

func randomKnapsack(rng *rand.Rand) *knapsack {
	items := rng.IntN(10) + 1
	k := &knapsack{weights: make([]int, items), profits: make([]int, items)}
	total := 0
	for i := range items {
		k.weights[i] = rng.IntN(20) + 1
		k.profits[i] = rng.IntN(30)
		total += k.weights[i]
	}
	k.capacity = rng.IntN(total + 1)
	return k
}

func TestExactSolverOptimum(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	solver := NewExactSolver[capacity](Options{Workers: 4})

	for range 50 {
		// Arrange
		problem := randomKnapsack(rng)

		// Act
		solution, err := solver.Solve(problem)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, bruteForceKnapsack(problem), solution.Value)
		assert.Len(t, solution.Decisions, problem.NbVars())

		weight, profit := 0, 0
		for i, value := range solution.Assignment(problem.NbVars()) {
			weight += value * problem.weights[i]
			profit += value * problem.profits[i]
		}
		assert.LessOrEqual(t, weight, problem.capacity)
		assert.Equal(t, solution.Value, profit)
	}
}

func TestExactSolverDecisionsFollowVariableOrder(t *testing.T) {
	problem := &knapsack{capacity: 5, weights: []int{3, 2, 4}, profits: []int{4, 3, 5}}

	solution, err := NewExactSolver[capacity](Options{}).Solve(problem)

	require.NoError(t, err)
	assert.Equal(t, 7, solution.Value)
	assert.Equal(t, []Decision{{0, 1}, {1, 1}, {2, 0}}, solution.Decisions)
	// Remaining capacities 0, 2, 3, 1 and 5 on the last layer
	assert.Equal(t, 5, solution.Width)
}

func TestExactSolverWidthExceeded(t *testing.T) {
	problem := &knapsack{capacity: 100, weights: []int{1, 2, 4, 8}, profits: []int{1, 1, 1, 1}}

	_, err := NewExactSolver[capacity](Options{MaxWidth: 3}).Solve(problem)

	assert.True(t, errors.Is(err, ErrWidthExceeded))
}

func TestExactSolverWithoutVariables(t *testing.T) {
	solution, err := NewExactSolver[capacity](Options{}).Solve(&knapsack{capacity: 3})

	require.NoError(t, err)
	assert.Equal(t, 0, solution.Value)
	assert.Empty(t, solution.Decisions)
}

func TestExactSolverSkipsUnimpactedStates(t *testing.T) {
	problem := &impactedKnapsack{knapsack: knapsack{capacity: 2, weights: []int{2, 5, 6}, profits: []int{1, 10, 10}}}

	solution, err := NewExactSolver[capacity](Options{Workers: 1}).Solve(problem)

	require.NoError(t, err)
	assert.Equal(t, 1, solution.Value)
	// Only the root expands item 0; items 1 and 2 never fit
	assert.Equal(t, 2, problem.transitions)
}

func TestImpactedByDefaultsToTrue(t *testing.T) {
	var problem Problem[capacity] = &knapsack{capacity: 0, weights: []int{1}, profits: []int{1}}

	assert.True(t, ImpactedBy(problem, capacity(0), 0))
}
