package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	mapset "github.com/deckarep/golang-set/v2"
)

// Graph is an undirected vertex-weighted graph. Vertices are 0-based.
type Graph struct {
	NbVars    int
	Weights   []int
	Adjacency []*bitset.BitSet // Adjacency[v] holds the neighbors of v
}

// NewGraph returns a graph of n isolated vertices of weight 1
func NewGraph(n int) Graph {
	graph := Graph{
		NbVars:    n,
		Weights:   make([]int, n),
		Adjacency: make([]*bitset.BitSet, n),
	}
	for v := range n {
		graph.Weights[v] = 1
		graph.Adjacency[v] = bitset.New(uint(n))
	}
	return graph
}

func (g Graph) AddEdge(u, v int) {
	g.Adjacency[u].Set(uint(v))
	g.Adjacency[v].Set(uint(u))
}

func (g Graph) Adjacent(u, v int) bool {
	return g.Adjacency[u].Test(uint(v))
}

func (g Graph) Neighbors(v int) []int {
	neighbors := make([]int, 0, g.Adjacency[v].Count())
	for i, ok := g.Adjacency[v].NextSet(0); ok; i, ok = g.Adjacency[v].NextSet(i + 1) {
		neighbors = append(neighbors, int(i))
	}
	return neighbors
}

// Edges returns every edge once, as (u, v) with u < v
func (g Graph) Edges() [][2]int {
	edges := make([][2]int, 0)
	for u := range g.NbVars {
		for _, v := range g.Neighbors(u) {
			if u < v {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return edges
}

// Complement replaces the adjacency by the one of the complement graph: two distinct vertices become adjacent iff they were not
func (g *Graph) Complement() {
	for v, neighbors := range g.Adjacency {
		complement := bitset.New(uint(g.NbVars)).Complement()
		complement.InPlaceDifference(neighbors)
		complement.Clear(uint(v))
		g.Adjacency[v] = complement
	}
}

func (g Graph) Clone() Graph {
	clone := Graph{
		NbVars:    g.NbVars,
		Weights:   slices.Clone(g.Weights),
		Adjacency: make([]*bitset.BitSet, len(g.Adjacency)),
	}
	for v, neighbors := range g.Adjacency {
		clone.Adjacency[v] = neighbors.Clone()
	}
	return clone
}

func GraphFromFile(path string) (Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer file.Close()

	graph, err := ParseDIMACSGraph(file)
	if err != nil {
		return Graph{}, fmt.Errorf("could not parse graph file %q: %w", path, err)
	}
	return graph, nil
}

// ParseDIMACSGraph reads a graph in DIMACS format ("p edge n m", "e u v").
// Vertex weights may be given by "n v w" lines and default to 1.
func ParseDIMACSGraph(reader io.Reader) (Graph, error) {
	var (
		nbVars    int
		header    bool
		weights   []int
		neighbors []mapset.Set[int]
	)
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		// Skip comments and blank lines
		if len(fields) == 0 || fields[0] == "c" {
			continue
		}

		switch fields[0] {
		case "p":
			if len(fields) < 3 {
				return Graph{}, fmt.Errorf("invalid problem line: %q", scanner.Text())
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return Graph{}, fmt.Errorf("invalid vertex count %q", fields[2])
			}
			nbVars = n
			weights = make([]int, n)
			neighbors = make([]mapset.Set[int], n)
			for v := range n {
				weights[v] = 1
				neighbors[v] = mapset.NewThreadUnsafeSet[int]()
			}
			header = true
		case "e", "n":
			if !header {
				return Graph{}, fmt.Errorf("line %q found before problem line", scanner.Text())
			}
			if len(fields) < 3 {
				return Graph{}, fmt.Errorf("invalid line: %q", scanner.Text())
			}
			first, err1 := strconv.Atoi(fields[1])
			second, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return Graph{}, fmt.Errorf("invalid integers in line %q", scanner.Text())
			}
			if first < 1 || first > nbVars {
				return Graph{}, fmt.Errorf("vertex %d out of range in line %q", first, scanner.Text())
			}

			if fields[0] == "n" {
				weights[first-1] = second
				continue
			}
			if second < 1 || second > nbVars {
				return Graph{}, fmt.Errorf("vertex %d out of range in line %q", second, scanner.Text())
			}
			// Self loops carry no independence constraint
			if first != second {
				neighbors[first-1].Add(second - 1)
				neighbors[second-1].Add(first - 1)
			}
		default:
			return Graph{}, fmt.Errorf("unknown line: %q", scanner.Text())
		}
	}

	if err := scanner.Err(); err != nil {
		return Graph{}, fmt.Errorf("error reading graph: %w", err)
	}
	if !header {
		return Graph{}, fmt.Errorf("missing problem line")
	}

	graph := NewGraph(nbVars)
	copy(graph.Weights, weights)
	for u, adjacent := range neighbors {
		adjacent.Each(func(v int) bool {
			graph.AddEdge(u, v)
			return false
		})
	}
	return graph, nil
}
