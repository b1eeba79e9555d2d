package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/ddmodels/internal/config"
	"github.com/limaJavier/ddmodels/internal/verify"
	"github.com/limaJavier/ddmodels/pkg/dp"
	"github.com/limaJavier/ddmodels/pkg/instance"
	"github.com/limaJavier/ddmodels/pkg/max2sat"
	"github.com/limaJavier/ddmodels/pkg/misp"
	"github.com/samber/lo"
)

const (
	exitVerificationFailed = 15
	exitWidthExceeded      = 30
)

var validModels = []string{"max2sat", "misp"}

// Report is the JSON output of a solve
type Report struct {
	Model      string `json:"model"`
	Value      int    `json:"value"`
	Assignment []int  `json:"assignment"`              // Value of each variable: 1/-1 for max2sat, 1/0 for misp
	Reference  *int   `json:"reference,omitempty"`     // Optimum found by gophersat when verifying
	Selected   []int  `json:"selected,omitempty"`      // 1-based selected vertices (misp)
	TrueVars   []int  `json:"trueVariables,omitempty"` // 1-based variables set to true (max2sat)
}

func main() {
	// Define arguments
	modelPtr := flag.String("model", "", "Model to solve the input with. Allowed values are: \"max2sat\" (WCNF input) and \"misp\" (DIMACS graph input)")
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to a JSON or YAML config file; by default a config file next to the executable is used if present")
	workersPtr := flag.Int("workers", 0, "Goroutines expanding each layer of the diagram; overrides the config file when positive")
	widthPtr := flag.Int("width", -1, "Largest layer allowed (0 for no limit); overrides the config file when not negative")
	verifyPtr := flag.Bool("verify", false, "Cross-check the optimum with gophersat")
	flag.Parse()
	modelName := strings.ToLower(*modelPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validModels, modelName) {
		log.Fatalf("%q is not a valid model", modelName)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Resolve configuration
	cfg := loadConfig(*configPathPtr)
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *widthPtr >= 0 {
		cfg.MaxWidth = *widthPtr
	}
	cfg.Verify = cfg.Verify || *verifyPtr
	options := dp.Options{Workers: cfg.Workers, MaxWidth: cfg.MaxWidth}

	// Solve
	var (
		report   Report
		verified bool
		err      error
	)
	switch modelName {
	case "max2sat":
		report, verified, err = solveMax2Sat(filePath, options, cfg.Verify)
	case "misp":
		report, verified, err = solveMisp(filePath, options, cfg.Verify)
	}
	if errors.Is(err, dp.ErrWidthExceeded) {
		log.Printf("the diagram grew beyond the allowed width: %v", err)
		os.Exit(exitWidthExceeded)
	} else if err != nil {
		log.Fatalf("an error occurred while solving: %v", err)
	}

	// Marshal output into json
	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(reportJson))
	} else if err := os.WriteFile(outFile, reportJson, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	if !verified {
		log.Print("verification failed")
		os.Exit(exitVerificationFailed)
	}
}

func loadConfig(configPath string) config.Config {
	if configPath == "" {
		located, ok := config.Locate()
		if !ok {
			return config.Default()
		}
		configPath = located
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}

func solveMax2Sat(filePath string, options dp.Options, crossCheck bool) (Report, bool, error) {
	satInstance, err := instance.Weighted2SatFromFile(filePath)
	if err != nil {
		return Report{}, false, err
	}
	problem := max2sat.New(satInstance)

	solution, err := dp.NewExactSolver[max2sat.State](options).Solve(problem)
	if err != nil {
		return Report{}, false, err
	}

	report := newReport("max2sat", solution, problem.NbVars())
	report.TrueVars = selectedVariables(report.Assignment, max2sat.True)

	// The reported value must be the weight satisfied by the reported assignment
	assignment := lo.Map(report.Assignment, func(value int, _ int) bool { return value == max2sat.True })
	verified := problem.Evaluate(assignment) == solution.Value

	if crossCheck {
		reference, err := verify.Max2SatOptimum(satInstance)
		if err != nil {
			return Report{}, false, err
		}
		report.Reference = &reference
		verified = verified && reference == solution.Value
	}
	return report, verified, nil
}

func solveMisp(filePath string, options dp.Options, crossCheck bool) (Report, bool, error) {
	graph, err := instance.GraphFromFile(filePath)
	if err != nil {
		return Report{}, false, err
	}
	problem := misp.New(graph)

	solution, err := dp.NewExactSolver[misp.State](options).Solve(problem)
	if err != nil {
		return Report{}, false, err
	}

	report := newReport("misp", solution, problem.NbVars())
	report.Selected = selectedVariables(report.Assignment, misp.Select)

	selected := lo.Map(report.Assignment, func(value int, _ int) bool { return value == misp.Select })
	weight, independent := problem.Evaluate(selected)
	verified := independent && weight == solution.Value

	if crossCheck {
		reference, err := verify.MispOptimum(graph)
		if err != nil {
			return Report{}, false, err
		}
		report.Reference = &reference
		verified = verified && reference == solution.Value
	}
	return report, verified, nil
}

func newReport(model string, solution dp.Solution, nbVars int) Report {
	return Report{
		Model:      model,
		Value:      solution.Value,
		Assignment: solution.Assignment(nbVars),
	}
}

// selectedVariables returns the 1-based variables taking value
func selectedVariables(assignment []int, value int) []int {
	variables := make([]int, 0)
	for variable, current := range assignment {
		if current == value {
			variables = append(variables, variable+1)
		}
	}
	return variables
}
