package misp

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/limaJavier/ddmodels/pkg/dp"
	"github.com/limaJavier/ddmodels/pkg/instance"
)

// Decision values
const (
	Reject = 0
	Select = 1
)

var (
	selectReject = []int{Select, Reject}
	rejectOnly   = []int{Reject}
)

// Misp is the DP model of a maximum weighted independent set problem. It is read-only once built.
type Misp struct {
	nbVars     int
	weights    []int
	complement []*bitset.BitSet // complement[v] holds the vertices not adjacent to v
}

// New builds the model of graph. The adjacency is complemented once, on a private copy of graph.
func New(graph instance.Graph) *Misp {
	frozen := graph.Clone()
	frozen.Complement()
	return &Misp{
		nbVars:     frozen.NbVars,
		weights:    frozen.Weights,
		complement: frozen.Adjacency,
	}
}

func (m *Misp) Weight(vertex dp.Variable) int {
	return m.weights[vertex]
}

func (m *Misp) NbVars() int {
	return m.nbVars
}

// InitialState has every vertex eligible
func (m *Misp) InitialState() State {
	return State{bits: bitset.New(uint(m.nbVars)).Complement()}
}

func (m *Misp) InitialValue() int {
	return 0
}

// DomainOf forces the rejection of vertices excluded by a selected neighbor
func (m *Misp) DomainOf(state State, vertex dp.Variable) []int {
	if state.Contains(vertex) {
		return selectReject
	}
	return rejectOnly
}

func (m *Misp) Transition(state State, _ dp.VarSet, decision dp.Decision) State {
	bits := state.bits.Clone()
	bits.Clear(uint(decision.Variable))

	// Drop the neighbors of a selected vertex
	if decision.Value == Select {
		bits.InPlaceIntersection(m.complement[decision.Variable])
	}
	return State{bits: bits}
}

func (m *Misp) TransitionCost(_ State, _ dp.VarSet, decision dp.Decision) int {
	if decision.Value == Reject {
		return 0
	}
	return m.weights[decision.Variable]
}

func (m *Misp) ImpactedBy(state State, vertex dp.Variable) bool {
	return state.Contains(vertex)
}

// Evaluate returns the weight of the selected vertices and whether they form an independent set
func (m *Misp) Evaluate(selected []bool) (weight int, independent bool) {
	independent = true
	for u := range m.nbVars {
		if !selected[u] {
			continue
		}
		weight += m.weights[u]
		for v := u + 1; v < m.nbVars; v++ {
			if selected[v] && !m.complement[u].Test(uint(v)) {
				independent = false
			}
		}
	}
	return weight, independent
}
