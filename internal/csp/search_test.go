package csp

import (
	"log"
	"strings"
	"testing"
	"time"
)

func baseConfig() Config {
	return Config{
		MaxTime:            5 * time.Second,
		VarStrategy:        "mrv",
		ValStrategy:        "lcv",
		UseAC3:             true,
		UseForwardChecking: true,
		AC3AtEachNode:      true,
		MaxDepthTrace:      5,
		MaxDepthAC3Trace:   3,
		Seed:               1,
	}
}

// A single variable with no constraints must solve trivially.
func TestScenarioSingleVariableNoConstraints(t *testing.T) {
	inst := NewInstance([][2]int{{1, 3}}, nil)
	result := Solve(inst, baseConfig(), nil)

	if result.Status != StatusAllFound {
		t.Fatalf("Status = %v, want StatusAllFound", result.Status)
	}
	if len(result.Solutions) != 3 {
		t.Fatalf("len(Solutions) = %d, want 3 (every value of the single variable)", len(result.Solutions))
	}
}

// A constraint with an empty allowed-pair relation makes the instance
// unsatisfiable by construction.
func TestScenarioEmptyAllowedRelation(t *testing.T) {
	c := NewConstraint(0, 1, nil)
	inst := NewInstance([][2]int{{1, 2}, {1, 2}}, []Constraint{c})
	result := Solve(inst, baseConfig(), nil)

	if result.Status != StatusInconsistentByAC3 && result.Status != StatusNoSolution {
		t.Fatalf("Status = %v, want InconsistentByAC3 or NoSolution for an empty allowed-pair relation", result.Status)
	}
	if len(result.Solutions) != 0 {
		t.Errorf("len(Solutions) = %d, want 0", len(result.Solutions))
	}
}

// Two variables constrained to be not-equal over a small domain;
// every solution must satisfy X != Y.
func TestScenarioNotEqualEnumeration(t *testing.T) {
	c := notEqualConstraint(0, 3, 1, 3)
	inst := NewInstance([][2]int{{1, 3}, {1, 3}}, []Constraint{c})
	cfg := baseConfig()
	result := Solve(inst, cfg, nil)

	if result.Status != StatusAllFound {
		t.Fatalf("Status = %v, want StatusAllFound", result.Status)
	}
	if len(result.Solutions) != 6 {
		t.Fatalf("len(Solutions) = %d, want 6 (3*3 minus the 3 equal pairs)", len(result.Solutions))
	}
	for _, sol := range result.Solutions {
		if sol.Values[0] == sol.Values[1] {
			t.Errorf("solution %v violates X != Y", sol.Values)
		}
	}
}

// 4-queens has exactly two solutions (up to the standard encoding).
func TestScenarioFourQueensHasTwoSolutions(t *testing.T) {
	inst := fourQueensInstance()
	cfg := baseConfig()
	result := Solve(inst, cfg, nil)

	if result.Status != StatusAllFound {
		t.Fatalf("Status = %v, want StatusAllFound", result.Status)
	}
	if len(result.Solutions) != 2 {
		t.Fatalf("len(Solutions) = %d, want 2", len(result.Solutions))
	}
}

// A forced chain (X0 < X1 < X2 over a tight domain) has exactly one
// solution reachable only by propagating choices through the whole
// chain.
func TestScenarioForcedChain(t *testing.T) {
	less01 := lessThanConstraint(0, 1, 1, 3)
	less12 := lessThanConstraint(1, 2, 1, 3)
	inst := NewInstance([][2]int{{1, 3}, {1, 3}, {1, 3}}, []Constraint{less01, less12})
	cfg := baseConfig()
	result := Solve(inst, cfg, nil)

	if result.Status != StatusAllFound {
		t.Fatalf("Status = %v, want StatusAllFound", result.Status)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}
	got := result.Solutions[0].Values
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Solutions[0] = %v, want [1 2 3]", got)
	}
}

// A tight deadline on a hard, highly symmetric instance must produce
// StatusTimeout rather than running unbounded.
func TestScenarioDeadlineProducesTimeout(t *testing.T) {
	// Pigeonhole: 9 variables, pairwise not-equal, only 8 values
	// available. Unsatisfiable by construction, but nothing short of
	// exhausting the tree can prove it without propagation.
	inst := allDifferentClique(9, 8)
	cfg := baseConfig()
	cfg.MaxTime = time.Millisecond
	cfg.UseAC3 = false
	cfg.AC3AtEachNode = false
	cfg.UseForwardChecking = false

	result := Solve(inst, cfg, nil)
	if result.Status != StatusTimeout {
		t.Fatalf("Status = %v, want StatusTimeout", result.Status)
	}
}

func TestFirstSolutionOnlyStopsAtOne(t *testing.T) {
	c := notEqualConstraint(0, 3, 1, 3)
	inst := NewInstance([][2]int{{1, 3}, {1, 3}}, []Constraint{c})
	cfg := baseConfig()
	cfg.FirstSolutionOnly = true

	result := Solve(inst, cfg, nil)
	if result.Status != StatusFirstFound {
		t.Fatalf("Status = %v, want StatusFirstFound", result.Status)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}
}

func TestVerboseTracingRespectsAC3DepthCutoff(t *testing.T) {
	c := notEqualConstraint(0, 3, 1, 3)
	inst := NewInstance([][2]int{{1, 3}, {1, 3}}, []Constraint{c})
	cfg := baseConfig()
	cfg.Verbose = true
	cfg.MaxDepthAC3Trace = 0

	var buf strings.Builder
	logger := log.New(&buf, "", 0)
	Solve(inst, cfg, logger)

	if strings.Contains(buf.String(), "AC-3 at depth") {
		t.Errorf("expected no AC-3 trace lines with MaxDepthAC3Trace=0, got:\n%s", buf.String())
	}
}

func TestVerboseTracingEmitsAC3LinesWithinCutoff(t *testing.T) {
	c := notEqualConstraint(0, 3, 1, 3)
	inst := NewInstance([][2]int{{1, 3}, {1, 3}}, []Constraint{c})
	cfg := baseConfig()
	cfg.Verbose = true
	cfg.MaxDepthAC3Trace = 3

	var buf strings.Builder
	logger := log.New(&buf, "", 0)
	Solve(inst, cfg, logger)

	if !strings.Contains(buf.String(), "AC-3 at depth 0") {
		t.Errorf("expected an AC-3 trace line for depth 0, got:\n%s", buf.String())
	}
}

func TestNodesExploredAtLeastMatchesSolutionCount(t *testing.T) {
	c := notEqualConstraint(0, 3, 1, 3)
	inst := NewInstance([][2]int{{1, 3}, {1, 3}}, []Constraint{c})
	result := Solve(inst, baseConfig(), nil)

	if result.NodesExplored < len(result.Solutions) {
		t.Errorf("NodesExplored = %d, must be >= len(Solutions) = %d", result.NodesExplored, len(result.Solutions))
	}
}

func fourQueensInstance() *Instance {
	n := 4
	domains := make([][2]int, n)
	for i := range domains {
		domains[i] = [2]int{1, n}
	}
	var constraints []Constraint
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var pairs [][2]int
			for r1 := 1; r1 <= n; r1++ {
				for r2 := 1; r2 <= n; r2++ {
					if r1 == r2 {
						continue
					}
					if abs(r1-r2) == abs(i-j) {
						continue
					}
					pairs = append(pairs, [2]int{r1, r2})
				}
			}
			constraints = append(constraints, NewConstraint(i, j, pairs))
		}
	}
	return NewInstance(domains, constraints)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func lessThanConstraint(u, v, lo, hi int) Constraint {
	var pairs [][2]int
	for x := lo; x <= hi; x++ {
		for y := lo; y <= hi; y++ {
			if x < y {
				pairs = append(pairs, [2]int{x, y})
			}
		}
	}
	return NewConstraint(u, v, pairs)
}

// allDifferentClique builds n variables, each over [1, domainSize],
// pairwise constrained not-equal: a complete graph with a tight,
// highly symmetric domain. When domainSize < n this is the pigeonhole
// instance — unsatisfiable, but only provably so by exhausting the
// tree, which is what makes it useful as a deadline stress case.
func allDifferentClique(n, domainSize int) *Instance {
	domains := make([][2]int, n)
	for i := range domains {
		domains[i] = [2]int{1, domainSize}
	}
	var constraints []Constraint
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			constraints = append(constraints, notEqualConstraint(i, domainSize, j, domainSize))
		}
	}
	return NewInstance(domains, constraints)
}
