package dp

import "github.com/bits-and-blooms/bitset"

// VarSet is a set of variables backed by a bitset.
// The zero value is an empty set.
type VarSet struct {
	bits *bitset.BitSet
}

// NewVarSet returns the set holding every variable in [0, n)
func NewVarSet(n int) VarSet {
	return VarSet{bits: bitset.New(uint(n)).Complement()}
}

// VarSetOf returns the set holding exactly variables
func VarSetOf(variables ...Variable) VarSet {
	bits := bitset.New(0)
	for _, variable := range variables {
		bits.Set(uint(variable))
	}
	return VarSet{bits: bits}
}

func (vars VarSet) Contains(variable Variable) bool {
	return vars.bits != nil && vars.bits.Test(uint(variable))
}

// Remove drops variable from the set. Copies of the set made with Clone are not affected.
func (vars VarSet) Remove(variable Variable) {
	if vars.bits != nil {
		vars.bits.Clear(uint(variable))
	}
}

func (vars VarSet) Len() int {
	if vars.bits == nil {
		return 0
	}
	return int(vars.bits.Count())
}

func (vars VarSet) Clone() VarSet {
	if vars.bits == nil {
		return VarSet{}
	}
	return VarSet{bits: vars.bits.Clone()}
}

// Each calls f on every variable of the set in ascending order
func (vars VarSet) Each(f func(Variable)) {
	if vars.bits == nil {
		return
	}
	for i, ok := vars.bits.NextSet(0); ok; i, ok = vars.bits.NextSet(i + 1) {
		f(Variable(i))
	}
}

func (vars VarSet) Slice() []Variable {
	result := make([]Variable, 0, vars.Len())
	vars.Each(func(variable Variable) {
		result = append(result, variable)
	})
	return result
}
