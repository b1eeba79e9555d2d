package max2sat

import (
	"github.com/limaJavier/ddmodels/pkg/dp"
	"github.com/limaJavier/ddmodels/pkg/instance"
)

// Decision values
const (
	True  = 1
	False = -1
)

var trueFalse = []int{True, False}

// Max2Sat is the DP model of a weighted MAX-2-SAT instance. It is read-only once built.
type Max2Sat struct {
	nbVars             int
	initial            int   // Total weight of the tautologies
	weights            []int // Weight of the clause made of a pair of literals, indexed by indexer
	sumOfClauseWeights []int // Weight of the clauses mentioning a variable
	indexer            literalIndexer
}

// New builds the model of inst. A clause over a pair of literals already seen overwrites the previous weight,
// except for tautologies whose weights all add up to the initial value.
func New(inst instance.Weighted2Sat) *Max2Sat {
	indexer := literalIndexer{nbVars: inst.NbVars}
	model := &Max2Sat{
		nbVars:             inst.NbVars,
		weights:            make([]int, indexer.Size()),
		sumOfClauseWeights: make([]int, inst.NbVars),
		indexer:            indexer,
	}

	for _, clause := range inst.Clauses {
		model.weights[indexer.Index(clause.A, clause.B)] = clause.Weight

		model.sumOfClauseWeights[varOf(clause.A)] += clause.Weight
		if !clause.IsUnit() {
			model.sumOfClauseWeights[varOf(clause.B)] += clause.Weight
		}
		if clause.IsTautology() {
			model.initial += clause.Weight
		}
	}
	return model
}

// Weight returns the weight of the clause (x or y). Weight(x, y) == Weight(y, x).
func (m *Max2Sat) Weight(x, y int) int {
	return m.weights[m.indexer.Index(x, y)]
}

func (m *Max2Sat) SumOfClauseWeights(variable dp.Variable) int {
	return m.sumOfClauseWeights[variable]
}

func (m *Max2Sat) NbVars() int {
	return m.nbVars
}

func (m *Max2Sat) InitialState() State {
	return NewState(m.nbVars)
}

// InitialValue is the weight of the tautologies
func (m *Max2Sat) InitialValue() int {
	return m.initial
}

func (m *Max2Sat) DomainOf(_ State, _ dp.Variable) []int {
	return trueFalse
}

func (m *Max2Sat) Transition(state State, vars dp.VarSet, decision dp.Decision) State {
	k := decision.Variable
	next := state.Clone()
	next.Set(k, 0)

	if decision.Value == False {
		vars.Each(func(l dp.Variable) {
			next.Substates[l] += m.Weight(t(k), t(l)) - m.Weight(t(k), f(l))
		})
	} else {
		vars.Each(func(l dp.Variable) {
			next.Substates[l] += m.Weight(f(k), t(l)) - m.Weight(f(k), f(l))
		})
	}
	return next
}

func (m *Max2Sat) TransitionCost(state State, vars dp.VarSet, decision dp.Decision) int {
	k := decision.Variable

	if decision.Value == False {
		res := pos(-state.At(k))
		sum := m.Weight(f(k), f(k)) // Unit clause
		vars.Each(func(l dp.Variable) {
			// Satisfied by k = F
			wff := m.Weight(f(k), f(l))
			wft := m.Weight(f(k), t(l))
			// Depending on the value of l
			wtt := m.Weight(t(k), t(l))
			wtf := m.Weight(t(k), f(l))

			sum += (wff + wft) + min(pos(state.At(l))+wtt, pos(-state.At(l))+wtf)
		})
		return res + sum
	}

	res := pos(state.At(k))
	sum := m.Weight(t(k), t(k)) // Unit clause
	vars.Each(func(l dp.Variable) {
		// Satisfied by k = T
		wtt := m.Weight(t(k), t(l))
		wtf := m.Weight(t(k), f(l))
		// Depending on the value of l
		wff := m.Weight(f(k), f(l))
		wft := m.Weight(f(k), t(l))

		sum += (wtf + wtt) + min(pos(state.At(l))+wft, pos(-state.At(l))+wff)
	})
	return res + sum
}

// Evaluate returns the weight of the clauses satisfied by a complete assignment, tautologies included
func (m *Max2Sat) Evaluate(assignment []bool) int {
	satisfied := func(literal int) bool {
		return assignment[varOf(literal)] == (literal > 0)
	}

	total := m.initial
	for index, weight := range m.weights {
		if weight == 0 {
			continue
		}
		x, y := m.indexer.Literals(index)
		if x != -y && (satisfied(x) || satisfied(y)) {
			total += weight
		}
	}
	return total
}
