package max2sat

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/limaJavier/ddmodels/pkg/dp"
	"github.com/samber/lo"
)

// State holds, for every variable, the net weight gained by setting it to true rather than false,
// given the clauses left pending by the variables fixed so far. Fixed variables hold 0.
type State struct {
	Substates []int
}

func NewState(n int) State {
	return State{Substates: make([]int, n)}
}

func (s State) At(variable dp.Variable) int {
	return s.Substates[variable]
}

func (s State) Set(variable dp.Variable, value int) {
	s.Substates[variable] = value
}

// Rank is the sum of the absolute substates. It is a ranking heuristic only.
func (s State) Rank() int {
	return lo.SumBy(s.Substates, abs)
}

// Compare orders states by rank
func (s State) Compare(other State) int {
	return cmp.Compare(s.Rank(), other.Rank())
}

func (s State) Equal(other State) bool {
	return slices.Equal(s.Substates, other.Substates)
}

func (s State) Clone() State {
	return State{Substates: slices.Clone(s.Substates)}
}

func (s State) Key() string {
	key := make([]byte, 0, 4*len(s.Substates))
	for _, substate := range s.Substates {
		key = strconv.AppendInt(key, int64(substate), 10)
		key = append(key, ',')
	}
	return string(key)
}
