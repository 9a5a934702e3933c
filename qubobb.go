// Package qubobb implements a branch-and-bound solver for Quadratic
// Unconstrained Binary Optimization (QUBO): minimizing x^T Q x + c^T x
// over x in {0,1}^n. The search tree is pruned at every node by a
// convex QP relaxation lower bound and by an iterative variable
// persistence fixed-point; four pluggable branching strategies choose
// which free variable to split on.
package qubobb

import (
	"time"

	"github.com/rs/zerolog"
)

// SolveBranchBoundRequest bundles the arguments of the programmatic
// entry point.
type SolveBranchBoundRequest struct {
	Problem        *Problem
	Timeout        time.Duration
	WarmStart      []float64
	Seed           *uint64
	BranchStrategy string
	Threads        int
	Verbose        bool
}

// SolveBranchBoundResult is the tuple returned by the entry point.
type SolveBranchBoundResult struct {
	X              []float64
	Objective      float64
	ElapsedSeconds float64
	NodesVisited   int
	NodesProcessed int
	Stats          Stats
}

// SolveBranchBound is the single programmatic entry point. Threads is
// advisory: the core search is single-threaded and cooperative; a
// value above 1 is accepted but does not change the search semantics.
func SolveBranchBound(req SolveBranchBoundRequest) (SolveBranchBoundResult, error) {
	opts := NewOptions(req.Timeout)

	if req.Seed != nil {
		opts = opts.WithSeed(*req.Seed)
	}
	if req.BranchStrategy != "" {
		opts = opts.WithBranchStrategy(branchStrategyFromName(req.BranchStrategy))
	}
	if req.WarmStart != nil {
		opts = opts.WithWarmStart(req.WarmStart)
	}
	if req.Verbose {
		opts = opts.WithLogger(zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger())
	}

	solver, err := NewSolver(req.Problem, opts)
	if err != nil {
		return SolveBranchBoundResult{}, err
	}

	x, obj, stats := solver.Solve()

	return SolveBranchBoundResult{
		X:              x,
		Objective:      obj,
		ElapsedSeconds: stats.Elapsed.Seconds(),
		NodesVisited:   stats.NodesVisited,
		NodesProcessed: stats.NodesProcessed,
		Stats:          stats,
	}, nil
}
