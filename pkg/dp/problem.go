package dp

// Variable is the zero-based index of a decision variable
type Variable int

// Decision assigns Value to Variable. The meaning of Value is up to each model.
type Decision struct {
	Variable Variable
	Value    int
}

// State is the DP summary of a partial assignment. Two states with the same key are the same state.
type State interface {
	Key() string
}

// Problem is the contract a DP model offers to a decision-diagram engine.
// Implementations must not mutate themselves nor the given state in Transition and TransitionCost,
// so that decisions from the same state may be evaluated in any order or concurrently.
type Problem[S State] interface {
	// Returns the number of decision variables
	NbVars() int
	// Returns the state at the root of every diagram
	InitialState() S
	// Returns a constant term added to the objective regardless of the decisions
	InitialValue() int
	// Returns the admissible values of variable in state; never empty for a reachable state
	DomainOf(state S, variable Variable) []int
	// Returns the state reached by applying decision to state. vars holds the variables still free, decision's variable excluded
	Transition(state S, vars VarSet, decision Decision) S
	// Returns the objective contribution of applying decision to state
	TransitionCost(state S, vars VarSet, decision Decision) int
}

// Impacter is implemented by problems able to tell which states a variable's decision can affect.
type Impacter[S State] interface {
	ImpactedBy(state S, variable Variable) bool
}

// ImpactedBy asks problem whether deciding variable can affect state.
// Problems that do not implement Impacter are assumed to always be impacted.
func ImpactedBy[S State](problem Problem[S], state S, variable Variable) bool {
	if impacter, ok := problem.(Impacter[S]); ok {
		return impacter.ImpactedBy(state, variable)
	}
	return true
}
