package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWCNF(t *testing.T) {
	//** Arrange
	input := `c a small instance
p wcnf 3 4
4 1 -2 0
3 -3 0

2 2 -2 0
5 -1 3 0
`

	//** Act
	instance, err := ParseWCNF(strings.NewReader(input))

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 3, instance.NbVars)
	assert.Equal(t, []WeightedClause{
		{Clause: Clause{A: 1, B: -2}, Weight: 4},
		{Clause: Clause{A: -3, B: -3}, Weight: 3},
		{Clause: Clause{A: 2, B: -2}, Weight: 2},
		{Clause: Clause{A: -1, B: 3}, Weight: 5},
	}, instance.Clauses)

	assert.True(t, instance.Clauses[1].IsUnit())
	assert.False(t, instance.Clauses[1].IsTautology())
	assert.True(t, instance.Clauses[2].IsTautology())
	assert.False(t, instance.Clauses[0].IsUnit())
}

func TestParseWCNFRejectsMalformedInput(t *testing.T) {
	inputs := map[string]string{
		"no header":          "1 1 2 0\n",
		"bad header":         "p cnf 2 1\n1 1 2 0\n",
		"three literals":     "p wcnf 3 1\n1 1 2 3 0\n",
		"missing terminator": "p wcnf 2 1\n1 1 2\n",
		"out of range":       "p wcnf 2 1\n1 1 -3 0\n",
		"not an integer":     "p wcnf 2 1\n1 x 2 0\n",
		"empty clause":       "p wcnf 2 1\n1 0\n",
		"only terminator":    "p wcnf 2 1\n0\n",
		"negative weight":    "p wcnf 2 1\n-3 1 2 0\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWCNF(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestParseWCNFAcceptsZeroWeight(t *testing.T) {
	instance, err := ParseWCNF(strings.NewReader("p wcnf 2 1\n0 1 -2 0\n"))

	require.NoError(t, err)
	assert.Equal(t, []WeightedClause{{Clause: Clause{A: 1, B: -2}, Weight: 0}}, instance.Clauses)
}

func TestToWCNFIsParsedBack(t *testing.T) {
	instance := Weighted2Sat{
		NbVars: 2,
		Clauses: []WeightedClause{
			{Clause: Clause{A: 1, B: 2}, Weight: 3},
			{Clause: Clause{A: -2, B: -2}, Weight: 1},
		},
	}

	parsed, err := ParseWCNF(strings.NewReader(instance.ToWCNF()))

	require.NoError(t, err)
	assert.Equal(t, instance, parsed)
}

func TestWeighted2SatFromMissingFile(t *testing.T) {
	_, err := Weighted2SatFromFile("testdata/does-not-exist.wcnf")

	assert.Error(t, err)
}
