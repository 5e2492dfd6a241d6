// Command cpsolver reads a CSP instance file and writes its solutions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/charles-vzf/CPSolver/internal/config"
	"github.com/charles-vzf/CPSolver/internal/csp"
	"github.com/charles-vzf/CPSolver/internal/parser"
	"github.com/charles-vzf/CPSolver/internal/writer"
)

var (
	maxTime           = flag.Int("t", 300, "maximum solving time in seconds")
	firstSolutionOnly = flag.Bool("f", false, "stop at first solution found")
	varStrategy       = flag.String("v", "mrv", "variable selection strategy: mrv, degree, random")
	valStrategy       = flag.String("w", "lcv", "value selection strategy: lcv, random, lexicographic")
	disableAC3        = flag.Bool("a", false, "disable AC-3")
	disableFC         = flag.Bool("c", false, "disable forward checking")
	disableAC3Node    = flag.Bool("n", false, "disable AC-3 at each backtracking node")
	outputPath        = flag.String("o", "", "output file path (default: <input>.sol)")
	verbose           = flag.Bool("V", false, "verbose mode (show detailed tracing)")
)

func init() {
	flag.Usage = usage
}

func usage() {
	p := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage:\n  %s <file.csp> [options]\n\n", p)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Input file format (.csp):
  # Comments start with #
  n                    # number of variables
  vid min max          # one domain line per variable, in order
  m                    # number of constraints
  u v (a,b) (c,d) ...   # one constraint line per constraint

Examples:
  %s instance.csp
  %s instance.csp -t 60 -f
  %s instance.csp -v degree -w random
  %s instance.csp -o my_solution.sol
  %s instance.csp -V
`, p, p, p, p, p)
}

func main() {
	log.SetPrefix("cpsolver: ")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: missing input file")
		usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	cfg := config.Default()
	cfg.MaxTime = time.Duration(*maxTime) * time.Second
	cfg.FirstSolutionOnly = *firstSolutionOnly
	cfg.VarStrategy = *varStrategy
	cfg.ValStrategy = *valStrategy
	cfg.UseAC3 = !*disableAC3
	cfg.UseForwardChecking = !*disableFC
	cfg.AC3AtEachNode = !*disableAC3Node
	cfg.Verbose = *verbose
	cfg.OutputPath = *outputPath
	cfg.Normalize()
	cfg.RunID = uuid.New()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	log.Printf("run %s", cfg.RunID)

	fmt.Println("--- PARSING CSP & INITIALIZING SOLVER ---")
	fmt.Println("Parsing CSP file...")

	inst, err := parser.ParseFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR during parsing: %s\n", err)
		os.Exit(1)
	}
	if cfg.Verbose {
		fmt.Printf("   Variables: %d\n", inst.NumVariables())
		fmt.Printf("   Constraints: %d\n", inst.NumConstraints())
	} else {
		fmt.Printf("   Variables: %d, Constraints: %d\n", inst.NumVariables(), inst.NumConstraints())
	}
	fmt.Println()

	fmt.Println("--- BACKTRACKING SEARCH ---")
	fmt.Println("Starting backtracking resolution...")

	searchCfg := csp.Config{
		MaxTime:            cfg.MaxTime,
		FirstSolutionOnly:  cfg.FirstSolutionOnly,
		VarStrategy:        cfg.VarStrategy,
		ValStrategy:        cfg.ValStrategy,
		UseAC3:             cfg.UseAC3,
		UseForwardChecking: cfg.UseForwardChecking,
		AC3AtEachNode:      cfg.AC3AtEachNode,
		Verbose:            cfg.Verbose,
		Seed:               cfg.Seed,
		MaxDepthTrace:      cfg.MaxDepthTrace,
		MaxDepthAC3Trace:   cfg.MaxDepthAC3Trace,
	}

	var traceLogger *log.Logger
	if cfg.Verbose {
		traceLogger = log.New(os.Stdout, "", 0)
	}

	result := csp.Solve(inst, searchCfg, traceLogger)

	fmt.Println()
	fmt.Println("--- RESULTS ---")
	fmt.Printf("Resolution status: %s\n", result.Status)
	fmt.Printf("Solutions found: %d\n", len(result.Solutions))
	fmt.Printf("Solving time: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("Nodes explored: %d\n", result.NodesExplored)
	fmt.Printf("Backtracks: %d\n", result.Backtracks)

	fmt.Println()
	fmt.Println("--- WRITING SOLUTIONS ---")
	outPath := resolveOutputPath(cfg.OutputPath, inputPath)
	fmt.Println("Writing solutions...")

	if err := writer.WriteFile(outPath, cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR writing solution file: %s\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Solutions saved to: %s\n", outPath)
}

func resolveOutputPath(configured, inputPath string) string {
	if configured != "" {
		return configured
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + ".sol"
}
