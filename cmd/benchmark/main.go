package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/ddmodels/internal/testutil"
	"github.com/limaJavier/ddmodels/pkg/dp"
	"github.com/limaJavier/ddmodels/pkg/max2sat"
	"github.com/limaJavier/ddmodels/pkg/misp"
	"github.com/samber/lo"
)

const (
	maxWeight          = 10
	clausesPerVariable = 3
	graphDensity       = 0.3
)

type ModelType int

const (
	max2satModel ModelType = iota
	mispModel
)

type ResultType int

const (
	solved ResultType = iota
	widthExceeded
)

var (
	modelTypes = map[ModelType]string{
		max2satModel: "max2sat",
		mispModel:    "misp",
	}
	resultTypes = map[ResultType]string{
		solved:        "solved",
		widthExceeded: "width-exceeded",
	}
)

type TestMetadata struct {
	Model  ModelType
	Seed   uint64
	NbVars int
}

type BenchmarkResult struct {
	Test     TestMetadata
	Workers  int
	Duration int64 // Milliseconds
	Width    int
	Value    int
	Result   ResultType
}

func main() {
	sizesPtr := flag.String("sizes", "10,14,18", "Comma separated numbers of variables of the generated instances")
	workersPtr := flag.String("workers", "1,2,4", "Comma separated numbers of goroutines to solve every instance with")
	instancesPtr := flag.Int("instances", 3, "Instances generated per model and size")
	widthPtr := flag.Int("width", 0, "Largest layer allowed (0 for no limit)")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	flag.Parse()

	sizes, err := parseList(*sizesPtr)
	if err != nil {
		log.Fatalf("invalid sizes: %v", err)
	}
	workers, err := parseList(*workersPtr)
	if err != nil {
		log.Fatalf("invalid workers: %v", err)
	}

	tests := getTests(sizes, *instancesPtr)
	results := make([]BenchmarkResult, 0, len(tests)*len(workers))

	for _, test := range tests {
		for _, workerCount := range workers {
			fmt.Printf("Benchmarking model \"%v\" with %v variables (seed %v) and %v workers\n", modelTypes[test.Model], test.NbVars, test.Seed, workerCount)

			result, err := measure(test, dp.Options{Workers: workerCount, MaxWidth: *widthPtr})
			if err != nil {
				log.Fatalf("an error occurred while solving model \"%v\" with %v variables: %v", modelTypes[test.Model], test.NbVars, err)
			}
			results = append(results, result)
		}
	}

	if err := toCsv(results, *outPtr); err != nil {
		log.Fatal(err)
	}
}

func getTests(sizes []int, instances int) []TestMetadata {
	tests := make([]TestMetadata, 0, 2*len(sizes)*instances)
	for _, model := range []ModelType{max2satModel, mispModel} {
		for _, size := range sizes {
			for seed := range instances {
				tests = append(tests, TestMetadata{Model: model, Seed: uint64(seed), NbVars: size})
			}
		}
	}
	return tests
}

// measure generates the instance of a test and times its exact solve
func measure(test TestMetadata, options dp.Options) (BenchmarkResult, error) {
	rng := rand.New(rand.NewPCG(test.Seed, uint64(test.NbVars)))
	result := BenchmarkResult{Test: test, Workers: options.Workers, Result: solved}

	var (
		solution dp.Solution
		err      error
	)
	start := time.Now()
	switch test.Model {
	case max2satModel:
		satInstance := testutil.GenerateWeighted2Sat(rng, test.NbVars, clausesPerVariable*test.NbVars, maxWeight)
		solution, err = dp.NewExactSolver[max2sat.State](options).Solve(max2sat.New(satInstance))
	case mispModel:
		graph := testutil.GenerateGraph(rng, test.NbVars, graphDensity, maxWeight)
		solution, err = dp.NewExactSolver[misp.State](options).Solve(misp.New(graph))
	default:
		return BenchmarkResult{}, fmt.Errorf("unknown model %v", test.Model)
	}
	result.Duration = time.Since(start).Milliseconds()

	if errors.Is(err, dp.ErrWidthExceeded) {
		result.Result = widthExceeded
		return result, nil
	} else if err != nil {
		return BenchmarkResult{}, err
	}

	result.Width = solution.Width
	result.Value = solution.Value
	return result, nil
}

func toCsv(results []BenchmarkResult, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Model", "Variables", "Seed", "Workers", "Duration(ms)", "Width", "Value", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			modelTypes[result.Test.Model],
			fmt.Sprintf("%d", result.Test.NbVars),
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Workers),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.Width),
			fmt.Sprintf("%d", result.Value),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// parseList parses a comma separated list of positive integers
func parseList(list string) ([]int, error) {
	fields := lo.Filter(strings.Split(list, ","), func(field string, _ int) bool { return strings.TrimSpace(field) != "" })
	if len(fields) == 0 {
		return nil, errors.New("empty list")
	}

	values := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		} else if value <= 0 {
			return nil, fmt.Errorf("%v is not positive", value)
		}
		values = append(values, value)
	}
	return values, nil
}
