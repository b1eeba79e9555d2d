package misp

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
	"github.com/limaJavier/ddmodels/pkg/dp"
)

// State is the set of vertices still eligible for selection.
// The zero value has no eligible vertex.
type State struct {
	bits *bitset.BitSet
}

// StateOf returns the state of a graph of n vertices where only vertices are eligible
func StateOf(n int, vertices ...dp.Variable) State {
	bits := bitset.New(uint(n))
	for _, vertex := range vertices {
		bits.Set(uint(vertex))
	}
	return State{bits: bits}
}

func (s State) Contains(vertex dp.Variable) bool {
	return s.bits != nil && s.bits.Test(uint(vertex))
}

func (s State) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

func (s State) Vertices() []dp.Variable {
	vertices := make([]dp.Variable, 0, s.Len())
	if s.bits == nil {
		return vertices
	}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		vertices = append(vertices, dp.Variable(i))
	}
	return vertices
}

func (s State) Equal(other State) bool {
	if s.bits == nil || other.bits == nil {
		return s.Len() == 0 && other.Len() == 0
	}
	return s.bits.Equal(other.bits)
}

func (s State) Key() string {
	if s.bits == nil {
		return ""
	}
	words := s.bits.Bytes()
	key := make([]byte, 0, 8*len(words))
	for _, word := range words {
		key = binary.LittleEndian.AppendUint64(key, word)
	}
	return string(key)
}
