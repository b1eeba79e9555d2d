package max2sat

import "github.com/limaJavier/ddmodels/pkg/dp"

// literalIndexer gives a unique index to every ordered pair of literals and vice versa.
//
// A literal is a signed, 1-based variable number. It is linearized into [0, 2n) as 2*(|x|-1) plus one when positive,
// which is a bijection between (variable, polarity) and [0, 2n). A pair (x, y) is first ordered so that x <= y,
// comparing the signed values, hence Index(x, y) == Index(y, x) and the weight matrix is symmetric by construction.
type literalIndexer struct {
	nbVars int
}

func (indexer literalIndexer) Index(x, y int) int {
	a, b := min(x, y), max(x, y)
	return linearize(a)*2*indexer.nbVars + linearize(b)
}

// Literals returns the pair of literals stored at index
func (indexer literalIndexer) Literals(index int) (x int, y int) {
	width := 2 * indexer.nbVars
	return delinearize(index / width), delinearize(index % width)
}

func (indexer literalIndexer) Size() int {
	return 4 * indexer.nbVars * indexer.nbVars
}

func linearize(literal int) int {
	sign := 0
	if literal > 0 {
		sign = 1
	}
	variable := abs(literal) - 1
	return variable + variable + sign
}

func delinearize(index int) int {
	literal := index/2 + 1
	if index%2 == 1 {
		return literal
	}
	return -literal
}

// t and f return the positive and negative literal of a variable
func t(variable dp.Variable) int { return int(variable) + 1 }
func f(variable dp.Variable) int { return -t(variable) }

// varOf returns the variable of a literal
func varOf(literal int) dp.Variable {
	return dp.Variable(abs(literal) - 1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func pos(x int) int {
	return max(0, x)
}
