package verify

import (
	"errors"
	"strconv"

	"github.com/crillab/gophersat/maxsat"
	"github.com/limaJavier/ddmodels/pkg/instance"
	"github.com/samber/lo"
)

var ErrUnsatisfiable = errors.New("hard constraints cannot be satisfied")

// Max2SatOptimum returns the best satisfied weight of satInstance, computed by gophersat.
// A clause over a pair of literals already seen replaces the previous one, as in the DP model.
// Tautologies all add up and are counted without going through the solver.
func Max2SatOptimum(satInstance instance.Weighted2Sat) (int, error) {
	tautologies, rest := lo.FilterReject(satInstance.Clauses, func(clause instance.WeightedClause, _ int) bool {
		return clause.IsTautology()
	})
	always := lo.SumBy(tautologies, func(clause instance.WeightedClause) int { return clause.Weight })

	clauses := make(map[[2]int]instance.WeightedClause)
	order := make([][2]int, 0, len(rest))
	for _, clause := range rest {
		key := [2]int{min(clause.A, clause.B), max(clause.A, clause.B)}
		if _, ok := clauses[key]; !ok {
			order = append(order, key)
		}
		clauses[key] = clause
	}

	// A zero weight would turn the clause into a hard one
	weighted := lo.Filter(order, func(key [2]int, _ int) bool { return clauses[key].Weight > 0 })
	constrs := lo.Map(weighted, func(key [2]int, _ int) maxsat.Constr {
		clause := clauses[key]
		lits := []maxsat.Lit{literal(clause.A)}
		if !clause.IsUnit() {
			lits = append(lits, literal(clause.B))
		}
		return maxsat.WeightedClause(lits, clause.Weight)
	})
	total := lo.SumBy(weighted, func(key [2]int) int { return clauses[key].Weight })

	best, err := optimum(constrs, total)
	if err != nil {
		return 0, err
	}
	return always + best, nil
}

// MispOptimum returns the weight of a maximum weighted independent set of graph, computed by gophersat
func MispOptimum(graph instance.Graph) (int, error) {
	constrs := make([]maxsat.Constr, 0)
	for _, edge := range graph.Edges() {
		constrs = append(constrs, maxsat.HardClause(maxsat.Not(vertex(edge[0])), maxsat.Not(vertex(edge[1]))))
	}

	total := 0
	for v, weight := range graph.Weights {
		// Selecting a vertex without positive weight never helps
		if weight <= 0 {
			continue
		}
		constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(vertex(v))}, weight))
		total += weight
	}

	return optimum(constrs, total)
}

// optimum returns total minus the cost of the best model of constrs, total being the weight of every soft constraint
func optimum(constrs []maxsat.Constr, total int) (int, error) {
	if total == 0 {
		return 0, nil
	}
	model, cost := maxsat.New(constrs...).Solve()
	if model == nil {
		return 0, ErrUnsatisfiable
	}
	return total - cost, nil
}

func literal(lit int) maxsat.Lit {
	if lit < 0 {
		return maxsat.Not(strconv.Itoa(-lit))
	}
	return maxsat.Var(strconv.Itoa(lit))
}

func vertex(v int) string {
	return "v" + strconv.Itoa(v)
}
