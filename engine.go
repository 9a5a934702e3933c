package qubobb

import (
	"math"
	"time"

	"github.com/jjhbw/qubobb/internal/relax"
	"github.com/rs/zerolog"
)

// Options configures a Solver. The zero value is not valid; use
// NewOptions to get the documented defaults.
type Options struct {
	maxTime        time.Duration
	seed           uint64
	branchStrategy BranchStrategy
	warmStart      []float64
	logger         zerolog.Logger
	middleware     Middleware
}

// DefaultSeed is the seed used when the caller does not supply one.
const DefaultSeed uint64 = 12_345_679

// NewOptions returns Options with the documented defaults: the default
// seed, FirstNotFixed branching, no warm start, and a disabled logger.
func NewOptions(maxTime time.Duration) Options {
	return Options{
		maxTime:        maxTime,
		seed:           DefaultSeed,
		branchStrategy: FirstNotFixed,
		logger:         zerolog.Nop(),
		middleware:     dummyMiddleware{},
	}
}

// WithSeed overrides the PRNG seed consumed by the Random strategy.
func (o Options) WithSeed(seed uint64) Options {
	o.seed = seed
	return o
}

// WithBranchStrategy overrides the branching heuristic.
func (o Options) WithBranchStrategy(strategy BranchStrategy) Options {
	o.branchStrategy = strategy
	return o
}

// WithWarmStart supplies an initial 0/1 incumbent. The vector is not
// validated here; the engine evaluates it like any other candidate.
func (o Options) WithWarmStart(x0 []float64) Options {
	o.warmStart = x0
	return o
}

// WithLogger attaches a structured logger for per-run diagnostics.
func (o Options) WithLogger(logger zerolog.Logger) Options {
	o.logger = logger
	return o
}

// WithMiddleware attaches an observability sink that is told about
// every node as it is created and decided. See instrumentation.go.
func (o Options) WithMiddleware(m Middleware) Options {
	o.middleware = m
	return o
}

// Stats summarizes a completed run.
type Stats struct {
	NodesVisited         int
	NodesProcessed       int
	ObjectiveEvaluations int
	SubproblemFailures   int
	Elapsed              time.Duration
	TimedOut             bool

	// ProvenOptimal is true only when the search exhausted the node
	// stack with zero subproblem failures: a QP failure strips the
	// "proved optimal" guarantee even though the stack still empties
	// out normally.
	ProvenOptimal bool
}

// Solver owns the exclusive, mutable state of one branch-and-bound
// run: the node stack, the incumbent, and the run counters. The
// Problem it searches is treated as read-only.
type Solver struct {
	problem *Problem
	opts    Options

	incumbent      []float64
	incumbentValue float64

	nodes nodeStack

	nodesVisited         int
	nodesProcessed       int
	objectiveEvaluations int
	subproblemFailures   int

	startTime time.Time
}

// NewSolver preprocesses problem (symmetrize, convexify if needed) and
// prepares a Solver ready to run Solve. Preprocessing failures (a
// non-converging eigendecomposition) are fatal and returned directly.
func NewSolver(problem *Problem, opts Options) (*Solver, error) {
	preprocessed, err := problem.preprocess()
	if err != nil {
		return nil, err
	}

	s := &Solver{
		problem:        preprocessed,
		opts:           opts,
		incumbent:      make([]float64, preprocessed.n),
		incumbentValue: 0.0,
	}

	if opts.warmStart != nil {
		s.incumbent = append([]float64(nil), opts.warmStart...)
		s.incumbentValue = preprocessed.eval(s.incumbent)
	}

	return s, nil
}

// Solve runs the branch-and-bound search to completion or until the
// time budget is exhausted, returning the best incumbent found and its
// objective value.
func (s *Solver) Solve() ([]float64, float64, Stats) {
	s.startTime = time.Now()

	rootFixing := persist(s.problem, Fixing{})
	s.nodes.push(newRootNode(s.problem.n, rootFixing))

	for !s.terminated() {
		node, ok := s.nodes.pop()
		if !ok {
			break
		}

		s.nodesVisited++

		if s.canPrune(node) {
			continue
		}

		s.nodesProcessed++

		result, err := relax.Solve(s.problem.Q, s.problem.c, node.fixed)
		var lb float64
		var primal []float64
		if err != nil {
			s.subproblemFailures++
			s.opts.logger.Warn().Err(err).Msg("subproblem relaxation failed; node fathomed as inconclusive")
			lb = math.Inf(1)
			primal = node.fixed.materialize(s.problem.n, node.solution)
		} else {
			lb = result.Objective
			primal = result.X
		}

		s.opts.middleware.NodeSolved(node, lb, primal)

		if lb > s.incumbentValue {
			continue
		}

		branchOn := chooseBranchVariable(s.opts.branchStrategy, s.problem, Node{solution: primal, fixed: node.fixed}, s.opts.seed, uint64(s.nodesVisited))

		zeroFixing := persist(s.problem, node.fixed.with(branchOn, 0.0))
		oneFixing := persist(s.problem, node.fixed.with(branchOn, 1.0))

		zeroChild := Node{lowerBound: lb, solution: primal, fixed: zeroFixing}
		oneChild := Node{lowerBound: lb, solution: primal, fixed: oneFixing}

		s.opts.middleware.NodeCreated(zeroChild)
		s.opts.middleware.NodeCreated(oneChild)

		// Depth-first, deterministic convention: the 1-branch is
		// pushed last and therefore explored first.
		s.nodes.push(zeroChild)
		s.nodes.push(oneChild)
	}

	elapsed := time.Since(s.startTime)
	timedOut := s.opts.maxTime > 0 && elapsed > s.opts.maxTime

	stats := Stats{
		NodesVisited:         s.nodesVisited,
		NodesProcessed:       s.nodesProcessed,
		ObjectiveEvaluations: s.objectiveEvaluations,
		SubproblemFailures:   s.subproblemFailures,
		Elapsed:              elapsed,
		TimedOut:             timedOut,
		ProvenOptimal:        s.nodes.empty() && !timedOut && s.subproblemFailures == 0,
	}

	return s.incumbent, s.incumbentValue, stats
}

// canPrune implements the pruning rule: fathom by bound, or
// materialize and score a completed leaf.
func (s *Solver) canPrune(node Node) bool {
	if node.lowerBound > s.incumbentValue {
		return true
	}

	if node.isLeaf(s.problem.n) {
		x := node.fixed.materialize(s.problem.n, node.solution)
		value := s.problem.eval(x)
		s.objectiveEvaluations++

		if value < s.incumbentValue {
			s.incumbent = x
			s.incumbentValue = value
			s.opts.logger.Debug().Float64("value", value).Msg("new incumbent")
		}
		return true
	}

	return false
}

func (s *Solver) terminated() bool {
	if s.opts.maxTime > 0 && time.Since(s.startTime) > s.opts.maxTime {
		return true
	}
	return s.nodes.empty()
}
