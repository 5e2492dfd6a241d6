// Package config defines the solver's recognized option set, used by
// the CLI and the solution writer. The CLI copies the search options
// into a csp.Config for the search engine.
package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Config is the full set of recognized solver options, plus ambient
// tracing/output knobs carried over from the original program's
// SolverParams. Zero-value fields are not valid on their own; use
// Default to get the documented defaults.
type Config struct {
	MaxTime            time.Duration
	FirstSolutionOnly  bool
	VarStrategy        string
	ValStrategy        string
	UseAC3             bool
	UseForwardChecking bool
	AC3AtEachNode      bool
	Verbose            bool

	// Seed selects the PRNG seed for the "random" variable/value
	// strategies. Zero means "seed nondeterministically at Solve time".
	Seed int64

	// MaxDepthTrace and MaxDepthAC3Trace cap how deep into the search
	// tree verbose tracing follows — backtracking and per-node AC-3
	// runs respectively — so a deep tree doesn't flood the log.
	MaxDepthTrace    int
	MaxDepthAC3Trace int
	OutputPath       string

	// RunID correlates a run's log output with its solution file. Set
	// once by cmd/cpsolver before solving; no flag sets it.
	RunID uuid.UUID
}

// Default returns the solver's documented option defaults.
func Default() Config {
	return Config{
		MaxTime:            300 * time.Second,
		FirstSolutionOnly:  false,
		VarStrategy:        "mrv",
		ValStrategy:        "lcv",
		UseAC3:             true,
		UseForwardChecking: true,
		AC3AtEachNode:      true,
		Verbose:            false,
		MaxDepthTrace:      5,
		MaxDepthAC3Trace:   3,
	}
}

// Normalize forces AC-3 at each node off whenever AC-3 preprocessing
// itself is disabled — running it only at nodes without ever having
// run it as preprocessing is not a configuration that makes sense.
func (c *Config) Normalize() {
	if !c.UseAC3 {
		c.AC3AtEachNode = false
	}
}

// Validate rejects numeric options that cannot possibly be honored.
// Unknown strategy names are deliberately not an error here — they
// default silently inside csp.Heuristics itself, so every
// caller (not just the CLI) gets the same behavior.
func (c Config) Validate() error {
	if c.MaxTime <= 0 {
		return fmt.Errorf("config: max_time must be positive, got %s", c.MaxTime)
	}
	return nil
}
