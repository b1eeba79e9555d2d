package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Clause is a disjunction of two literals. A unit clause repeats its only literal.
// Literals are signed, 1-based variable numbers: x and -x.
type Clause struct {
	A int
	B int
}

func (c Clause) IsUnit() bool {
	return c.A == c.B
}

// IsTautology tells whether the clause holds regardless of the assignment (x or not x)
func (c Clause) IsTautology() bool {
	return c.A == -c.B
}

type WeightedClause struct {
	Clause
	Weight int
}

// Weighted2Sat is a weighted MAX-2-SAT instance
type Weighted2Sat struct {
	NbVars  int
	Clauses []WeightedClause
}

func (w Weighted2Sat) ToWCNF() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p wcnf %d %d\n", w.NbVars, len(w.Clauses))
	for _, clause := range w.Clauses {
		if clause.IsUnit() {
			fmt.Fprintf(&builder, "%d %d 0\n", clause.Weight, clause.A)
		} else {
			fmt.Fprintf(&builder, "%d %d %d 0\n", clause.Weight, clause.A, clause.B)
		}
	}
	return builder.String()
}

func Weighted2SatFromFile(path string) (Weighted2Sat, error) {
	file, err := os.Open(path)
	if err != nil {
		return Weighted2Sat{}, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer file.Close()

	instance, err := ParseWCNF(file)
	if err != nil {
		return Weighted2Sat{}, fmt.Errorf("could not parse WCNF file %q: %w", path, err)
	}
	return instance, nil
}

// ParseWCNF reads a weighted CNF whose clauses hold at most two literals
func ParseWCNF(reader io.Reader) (Weighted2Sat, error) {
	var instance Weighted2Sat
	header := false
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip comments and blank lines
		if line == "" || line[0] == 'c' {
			continue
		}
		// Problem line
		if line[0] == 'p' {
			fields := strings.Fields(line)
			if len(fields) < 4 || fields[1] != "wcnf" {
				return Weighted2Sat{}, fmt.Errorf("invalid problem line: %q", line)
			}
			nbVars, err := strconv.Atoi(fields[2])
			if err != nil || nbVars < 0 {
				return Weighted2Sat{}, fmt.Errorf("invalid variable count %q", fields[2])
			}
			nbClauses, err := strconv.Atoi(fields[3])
			if err != nil || nbClauses < 0 {
				return Weighted2Sat{}, fmt.Errorf("invalid clause count %q", fields[3])
			}
			instance.NbVars = nbVars
			instance.Clauses = make([]WeightedClause, 0, nbClauses)
			header = true
			continue
		}
		if !header {
			return Weighted2Sat{}, fmt.Errorf("clause %q found before problem line", line)
		}
		// Clause line
		clause, err := parseWCNFClause(line, instance.NbVars)
		if err != nil {
			return Weighted2Sat{}, err
		}
		instance.Clauses = append(instance.Clauses, clause)
	}

	if err := scanner.Err(); err != nil {
		return Weighted2Sat{}, fmt.Errorf("error reading WCNF: %w", err)
	}
	if !header {
		return Weighted2Sat{}, fmt.Errorf("missing problem line")
	}
	return instance, nil
}

func parseWCNFClause(line string, nbVars int) (WeightedClause, error) {
	fields := strings.Fields(line)
	values := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return WeightedClause{}, fmt.Errorf("invalid integer %q in clause %q", field, line)
		}
		values = append(values, value)
	}
	if len(values) < 2 || values[len(values)-1] != 0 {
		return WeightedClause{}, fmt.Errorf("clause %q is not terminated by 0", line)
	}

	weight, literals := values[0], values[1:len(values)-1]
	if weight < 0 {
		return WeightedClause{}, fmt.Errorf("negative weight %d in clause %q", weight, line)
	}
	if len(literals) == 0 || len(literals) > 2 {
		return WeightedClause{}, fmt.Errorf("clause %q must hold one or two literals", line)
	}
	for _, literal := range literals {
		if literal == 0 || literal > nbVars || -literal > nbVars {
			return WeightedClause{}, fmt.Errorf("literal %d out of range in clause %q", literal, line)
		}
	}

	clause := Clause{A: literals[0], B: literals[len(literals)-1]}
	return WeightedClause{Clause: clause, Weight: weight}, nil
}
