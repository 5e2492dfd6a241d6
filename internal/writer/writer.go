// Package writer renders a search result into the solution file
// format: a metadata banner, one block per solution, and a distinct
// "no solution" form.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charles-vzf/CPSolver/internal/config"
	"github.com/charles-vzf/CPSolver/internal/csp"
)

// WriteFile renders result to path, creating or truncating it.
func WriteFile(path string, cfg config.Config, result csp.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, cfg, result)
}

// Write renders result to w per the metadata-banner-plus-blocks format.
// The banner's timestamp is the moment Write runs, not the moment the
// solve completed; callers that care about the distinction should
// write promptly after Solve returns.
func Write(w io.Writer, cfg config.Config, result csp.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# CPSolver solution file\n")
	fmt.Fprintf(bw, "# timestamp: %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(bw, "# run_id: %s\n", cfg.RunID)
	fmt.Fprintf(bw, "# status: %s\n", result.Status)
	fmt.Fprintf(bw, "# solutions_found: %d\n", len(result.Solutions))
	fmt.Fprintf(bw, "# nodes_explored: %d\n", result.NodesExplored)
	fmt.Fprintf(bw, "# backtracks: %d\n", result.Backtracks)
	fmt.Fprintf(bw, "# ac3_revisions: %d\n", result.Revisions)
	fmt.Fprintf(bw, "# duration: %s\n", result.Duration.Round(time.Microsecond))
	fmt.Fprintf(bw, "# var_strategy: %s\n", cfg.VarStrategy)
	fmt.Fprintf(bw, "# val_strategy: %s\n", cfg.ValStrategy)
	fmt.Fprintf(bw, "# use_ac3: %t\n", cfg.UseAC3)
	fmt.Fprintf(bw, "# use_forward_checking: %t\n", cfg.UseForwardChecking)
	fmt.Fprintf(bw, "# ac3_at_each_node: %t\n", cfg.AC3AtEachNode)
	fmt.Fprintf(bw, "# first_solution_only: %t\n", cfg.FirstSolutionOnly)
	fmt.Fprintln(bw, "#")

	if len(result.Solutions) == 0 {
		fmt.Fprintln(bw, "# No solution found")
		return bw.Flush()
	}

	for i, sol := range result.Solutions {
		fmt.Fprintf(bw, "# Solution %d\n", i+1)
		for v, value := range sol.Values {
			if v > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "v%d=%d", v, value)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
