package dp

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrWidthExceeded = errors.New("decision diagram width exceeded")

type Options struct {
	Workers  int // Number of goroutines expanding a layer; runtime.NumCPU() when not positive
	MaxWidth int // Maximum number of nodes in a layer; 0 means unlimited
}

// Solution is an optimal path of a diagram: its value (initial value included) and the decisions along it
type Solution struct {
	Value     int
	Decisions []Decision
	Width     int // Largest layer of the compiled diagram
}

// Assignment returns the value taken by each of the n variables
func (solution Solution) Assignment(n int) []int {
	assignment := make([]int, n)
	for _, decision := range solution.Decisions {
		assignment[decision.Variable] = decision.Value
	}
	return assignment
}

type Solver[S State] interface {
	Solve(problem Problem[S]) (Solution, error)
}

// NewExactSolver returns a solver compiling the exact decision diagram of a problem, layer by layer, in natural variable order.
// Nodes holding equal states are merged and keep their best value.
func NewExactSolver[S State](options Options) Solver[S] {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	return &exactSolver[S]{options: options}
}

type exactSolver[S State] struct {
	options Options
}

type node[S State] struct {
	state    S
	value    int
	parent   *node[S]
	decision Decision
}

func (solver *exactSolver[S]) Solve(problem Problem[S]) (Solution, error) {
	vars := NewVarSet(problem.NbVars())
	layer := []*node[S]{{state: problem.InitialState(), value: problem.InitialValue()}}
	width := len(layer)

	for i := range problem.NbVars() {
		variable := Variable(i)
		vars.Remove(variable)

		children := make([][]*node[S], len(layer))
		group := new(errgroup.Group)
		group.SetLimit(solver.options.Workers)
		for j, parent := range layer {
			group.Go(func() error {
				children[j] = expand(problem, parent, vars, variable)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return Solution{}, err
		}

		layer = merge(children)
		width = max(width, len(layer))
		if solver.options.MaxWidth > 0 && len(layer) > solver.options.MaxWidth {
			return Solution{}, fmt.Errorf("layer of variable %v holds %v nodes: %w", variable, len(layer), ErrWidthExceeded)
		}
	}

	best := lo.MaxBy(layer, func(a, b *node[S]) bool { return a.value > b.value })
	solution := best.solution()
	solution.Width = width
	return solution, nil
}

func expand[S State](problem Problem[S], parent *node[S], vars VarSet, variable Variable) []*node[S] {
	domain := problem.DomainOf(parent.state, variable)

	// An unimpacted state is left as is and the decision is forced
	if !ImpactedBy(problem, parent.state, variable) {
		decision := Decision{Variable: variable, Value: domain[0]}
		return []*node[S]{{
			state:    parent.state,
			value:    parent.value + problem.TransitionCost(parent.state, vars, decision),
			parent:   parent,
			decision: decision,
		}}
	}

	children := make([]*node[S], 0, len(domain))
	for _, value := range domain {
		decision := Decision{Variable: variable, Value: value}
		children = append(children, &node[S]{
			state:    problem.Transition(parent.state, vars, decision),
			value:    parent.value + problem.TransitionCost(parent.state, vars, decision),
			parent:   parent,
			decision: decision,
		})
	}
	return children
}

// merge flattens the children of a layer keeping, for every state, the first node reaching the best value
func merge[S State](children [][]*node[S]) []*node[S] {
	positions := make(map[string]int)
	layer := make([]*node[S], 0, len(children))
	for _, nodes := range children {
		for _, child := range nodes {
			key := child.state.Key()
			position, ok := positions[key]
			if !ok {
				positions[key] = len(layer)
				layer = append(layer, child)
			} else if child.value > layer[position].value {
				layer[position] = child
			}
		}
	}
	return layer
}

func (n *node[S]) solution() Solution {
	decisions := make([]Decision, 0)
	for current := n; current.parent != nil; current = current.parent {
		decisions = append(decisions, current.decision)
	}
	slices.Reverse(decisions)
	return Solution{Value: n.value, Decisions: decisions}
}
