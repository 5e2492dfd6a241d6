package csp

import (
	"log"
	"time"
)

// Status is the terminal outcome of a solve, the state machine's exit
// state (PreAC3 -> Searching -> {FirstFound, AllFound, NoSolution,
// Timeout, InconsistentByAC3}).
type Status int

const (
	// StatusFirstFound: first_solution_only was set and a solution was
	// found.
	StatusFirstFound Status = iota
	// StatusAllFound: the tree was exhausted and at least one solution
	// was found.
	StatusAllFound
	// StatusNoSolution: the tree was exhausted with zero solutions.
	StatusNoSolution
	// StatusTimeout: the deadline was reached before the tree was
	// exhausted.
	StatusTimeout
	// StatusInconsistentByAC3: preprocessing AC-3 emptied a domain.
	StatusInconsistentByAC3
)

// String renders a Status as the human-readable resolution line a
// solution file or progress report shows.
func (s Status) String() string {
	switch s {
	case StatusFirstFound:
		return "First solution found"
	case StatusAllFound:
		return "All solutions found"
	case StatusNoSolution:
		return "No solution (full exploration)"
	case StatusTimeout:
		return "Timeout"
	case StatusInconsistentByAC3:
		return "Inconsistent (AC-3)"
	default:
		return "Unknown"
	}
}

// Config is the subset of solver options the Search Engine consumes.
// internal/config.Config has fields of the same names, which
// cmd/cpsolver copies across; kept as a separate plain struct here so
// the core package has no dependency on internal/config.
type Config struct {
	MaxTime            time.Duration
	FirstSolutionOnly  bool
	VarStrategy        string
	ValStrategy        string
	UseAC3             bool
	UseForwardChecking bool
	AC3AtEachNode      bool
	Verbose            bool
	Seed               int64
	MaxDepthTrace      int
	MaxDepthAC3Trace   int
}

// Result is everything a caller needs after a solve: the solutions
// found, the terminal status, and the node/backtrack/revision counters.
type Result struct {
	Solutions     []Solution
	Status        Status
	NodesExplored int
	Backtracks    int
	Revisions     int
	Duration      time.Duration
}

// search carries the mutable state of one Solve call through the
// recursive backtracking procedure. logger may be nil; trace lines are
// only emitted when cfg.Verbose is set.
type search struct {
	inst       *Instance
	domains    *Domains
	assignment map[int]int
	heur       *Heuristics
	cfg        Config
	deadline   time.Time
	logger     *log.Logger

	nodesExplored int
	backtracks    int
	timeout       bool
	solutions     []Solution
}

// Solve runs a complete solve of inst under cfg: AC-3 preprocessing
// (if enabled), then recursive backtracking search with the
// configured heuristics and propagation. logger receives verbose
// trace lines when cfg.Verbose is set; pass nil to discard them.
func Solve(inst *Instance, cfg Config, logger *log.Logger) Result {
	start := time.Now()
	domains := NewDomains(inst)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	assignment := make(map[int]int, inst.NumVariables())

	s := &search{
		inst:       inst,
		domains:    domains,
		assignment: assignment,
		heur:       NewHeuristics(inst, domains, assignment, seed),
		cfg:        cfg,
		deadline:   start.Add(cfg.MaxTime),
		logger:     logger,
	}

	revisions := 0
	if cfg.UseAC3 {
		ac3 := NewAC3(inst, domains)
		consistent := ac3.Run()
		revisions = ac3.Revisions
		if !consistent {
			return Result{
				Status:    StatusInconsistentByAC3,
				Revisions: revisions,
				Duration:  time.Since(start),
			}
		}
	}

	s.backtrack(0)

	status := StatusNoSolution
	switch {
	case s.timeout:
		status = StatusTimeout
	case cfg.FirstSolutionOnly && len(s.solutions) > 0:
		status = StatusFirstFound
	case len(s.solutions) > 0:
		status = StatusAllFound
	}

	return Result{
		Solutions:     s.solutions,
		Status:        status,
		NodesExplored: s.nodesExplored,
		Backtracks:    s.backtracks,
		Revisions:     revisions,
		Duration:      time.Since(start),
	}
}

func (s *search) trace(depth int, format string, args ...interface{}) {
	if s.logger == nil || !s.cfg.Verbose || depth >= s.cfg.MaxDepthTrace {
		return
	}
	s.logger.Printf(format, args...)
}

// traceAC3 logs the outcome of a per-node AC-3 run, gated by its own
// depth cutoff so a deep tree doesn't flood the log with propagation
// detail on every node.
func (s *search) traceAC3(depth int, consistent bool, revisions int) {
	if s.logger == nil || !s.cfg.Verbose || depth >= s.cfg.MaxDepthAC3Trace {
		return
	}
	if consistent {
		s.logger.Printf("   AC-3 at depth %d: consistent, %d revisions", depth, revisions)
	} else {
		s.logger.Printf("   AC-3 at depth %d: inconsistent, %d revisions", depth, revisions)
	}
}

// backtrack is the recursive per-node search procedure: check the
// deadline, check for a complete assignment, optionally propagate,
// pick a variable and try its values in order. The boolean return
// distinguishes only "stop, first solution is sufficient" (true) from
// "continue searching at the caller" (false); finding additional
// solutions in !FirstSolutionOnly mode never returns true.
func (s *search) backtrack(depth int) bool {
	if time.Now().After(s.deadline) || time.Now().Equal(s.deadline) {
		s.timeout = true
		s.trace(depth, "   time limit reached at depth %d", depth)
		return false
	}

	if len(s.assignment) == s.inst.NumVariables() {
		if !Validate(s.inst, s.assignment) {
			panic("csp: validator rejected a complete assignment reached by search")
		}
		s.solutions = append(s.solutions, ToSolution(s.inst, s.assignment))
		s.trace(depth, "   solution found at depth %d (nodes: %d)", depth, s.nodesExplored)
		return s.cfg.FirstSolutionOnly
	}

	nodeSnapshot := s.domains.Snapshot()

	if s.cfg.AC3AtEachNode {
		ac3 := NewAC3(s.inst, s.domains)
		consistent := ac3.Run()
		s.traceAC3(depth, consistent, ac3.Revisions)
		if !consistent {
			s.domains.Restore(nodeSnapshot)
			return false
		}
	}

	varID := s.heur.SelectVariable(s.cfg.VarStrategy)
	if varID == -1 {
		panic("csp: heuristic reported no unassigned variable with an incomplete assignment")
	}
	if _, already := s.assignment[varID]; already {
		panic("csp: heuristic selected an already-assigned variable")
	}

	s.trace(depth, "   depth %d: selecting variable %d (domain size %d)", depth, varID, s.domains.Size(varID))

	values := s.heur.OrderValues(varID, s.cfg.ValStrategy)

	for _, value := range values {
		s.nodesExplored++

		if !s.consistentWithAssignment(varID, value) {
			continue
		}

		var fcSnapshot Snapshot
		if s.cfg.UseForwardChecking {
			fcSnapshot = s.domains.Snapshot()
			if !ForwardCheck(s.inst, s.domains, s.assignment, varID, value) {
				s.domains.Restore(fcSnapshot)
				continue
			}
		}

		s.assignment[varID] = value
		s.trace(depth, "     trying %d = %d", varID, value)

		if s.backtrack(depth + 1) {
			return true
		}

		delete(s.assignment, varID)
		if s.cfg.UseForwardChecking {
			s.domains.Restore(fcSnapshot)
		}
		s.backtracks++

		if s.timeout {
			break
		}
	}

	s.domains.Restore(nodeSnapshot)
	return false
}

// consistentWithAssignment checks value against every already-assigned
// neighbor of varID before any domain work is done for it.
func (s *search) consistentWithAssignment(varID, value int) bool {
	for _, w := range s.inst.Neighbors(varID) {
		wv, assigned := s.assignment[w]
		if !assigned {
			continue
		}
		if !s.inst.IsPairAllowed(varID, value, w, wv) {
			return false
		}
	}
	return true
}
