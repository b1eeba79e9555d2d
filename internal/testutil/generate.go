package testutil

import (
	"math/rand/v2"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/limaJavier/ddmodels/pkg/instance"
	"github.com/samber/lo"
)

// GenerateWeighted2Sat returns a random instance whose clauses are over distinct pairs of literals.
// Roughly one clause out of five is a unit clause; tautologies may appear.
func GenerateWeighted2Sat(rng *rand.Rand, nbVars, nbClauses, maxWeight int) instance.Weighted2Sat {
	satInstance := instance.Weighted2Sat{
		NbVars:  nbVars,
		Clauses: make([]instance.WeightedClause, 0, nbClauses),
	}
	seen := mapset.NewThreadUnsafeSet[[2]int]()

	randomLiteral := func() int {
		literal := 1 + rng.IntN(nbVars)
		if rng.Float32() < 0.5 {
			return -literal
		}
		return literal
	}

	for attempts := 0; len(satInstance.Clauses) < nbClauses && attempts < 100*nbClauses; attempts++ {
		a := randomLiteral()
		b := a
		if rng.Float32() >= 0.2 {
			b = randomLiteral()
		}
		if !seen.Add(pairKey(a, b)) {
			continue
		}
		satInstance.Clauses = append(satInstance.Clauses, instance.WeightedClause{
			Clause: instance.Clause{A: a, B: b},
			Weight: 1 + rng.IntN(maxWeight),
		})
	}

	return satInstance
}

// GenerateGraph returns a random graph where every edge exists with the given probability
func GenerateGraph(rng *rand.Rand, nbVars int, density float32, maxWeight int) instance.Graph {
	graph := instance.NewGraph(nbVars)
	for u := range nbVars {
		graph.Weights[u] = 1 + rng.IntN(maxWeight)
		for v := u + 1; v < nbVars; v++ {
			if rng.Float32() < density {
				graph.AddEdge(u, v)
			}
		}
	}
	return graph
}

// EachAssignment calls f on each of the 2^n assignments of n variables. f must not retain its argument.
func EachAssignment(n int, f func(assignment []bool)) {
	assignment := make([]bool, n)
	for mask := range 1 << n {
		for i := range n {
			assignment[i] = mask&(1<<i) != 0
		}
		f(assignment)
	}
}

// SatisfiedWeight returns the weight of the clauses of satInstance satisfied by assignment.
// A clause over a pair of literals already seen replaces the previous one; tautologies all count.
func SatisfiedWeight(satInstance instance.Weighted2Sat, assignment []bool) int {
	tautologies, rest := lo.FilterReject(satInstance.Clauses, func(clause instance.WeightedClause, _ int) bool {
		return clause.IsTautology()
	})
	clauses := make(map[[2]int]instance.WeightedClause)
	for _, clause := range rest {
		clauses[pairKey(clause.A, clause.B)] = clause
	}

	satisfied := func(literal int) bool {
		variable := literal
		if variable < 0 {
			variable = -variable
		}
		return assignment[variable-1] == (literal > 0)
	}

	always := lo.SumBy(tautologies, func(clause instance.WeightedClause) int { return clause.Weight })
	return always + lo.SumBy(lo.Values(clauses), func(clause instance.WeightedClause) int {
		if satisfied(clause.A) || satisfied(clause.B) {
			return clause.Weight
		}
		return 0
	})
}

func BruteForceMax2Sat(satInstance instance.Weighted2Sat) int {
	best := 0
	EachAssignment(satInstance.NbVars, func(assignment []bool) {
		best = max(best, SatisfiedWeight(satInstance, assignment))
	})
	return best
}

func BruteForceMisp(graph instance.Graph) int {
	best := 0
	EachAssignment(graph.NbVars, func(selected []bool) {
		weight := 0
		for u := range graph.NbVars {
			if !selected[u] {
				continue
			}
			for v := u + 1; v < graph.NbVars; v++ {
				if selected[v] && graph.Adjacent(u, v) {
					return
				}
			}
			weight += graph.Weights[u]
		}
		best = max(best, weight)
	})
	return best
}

func pairKey(a, b int) [2]int {
	return [2]int{min(a, b), max(a, b)}
}
