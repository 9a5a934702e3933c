package qubobb

import (
	"math"

	"github.com/jjhbw/qubobb/internal/prng"
)

// BranchStrategy selects which free variable is branched on at a node.
// All four strategies are required to be complete: given a node with
// at least one free variable, they must return a free index.
type BranchStrategy int

const (
	// FirstNotFixed picks the smallest free index.
	FirstNotFixed BranchStrategy = iota
	// MostViolated picks the free index whose relaxed value is
	// closest to 1/2 (the least-committed variable).
	MostViolated
	// Random picks a pseudo-random free index, deterministic given
	// (seed, nodesVisited).
	Random
	// WorstApproximation picks the free index whose worse rounded
	// completion raises the objective the most.
	WorstApproximation
)

// branchStrategyFromName maps a branch strategy name to its
// BranchStrategy value. Unknown names default to FirstNotFixed.
func branchStrategyFromName(name string) BranchStrategy {
	switch name {
	case "MostViolated":
		return MostViolated
	case "Random":
		return Random
	case "WorstApproximation":
		return WorstApproximation
	case "FirstNotFixed":
		return FirstNotFixed
	default:
		return FirstNotFixed
	}
}

// chooseBranchVariable dispatches to the configured strategy.
func chooseBranchVariable(strategy BranchStrategy, p *Problem, node Node, seed uint64, nodesVisited uint64) int {
	switch strategy {
	case MostViolated:
		return mostViolatedBranchPoint(p.n, node)
	case Random:
		return randomBranchPoint(p.n, node, seed, nodesVisited)
	case WorstApproximation:
		return worstApproximationBranchPoint(p, node)
	default:
		return firstNotFixedBranchPoint(p.n, node)
	}
}

// firstNotFixedBranchPoint returns the smallest free index.
func firstNotFixedBranchPoint(n int, node Node) int {
	for i := 0; i < n; i++ {
		if node.fixed.isFree(i) {
			return i
		}
	}
	panic("qubobb: no free variable to branch on")
}

// mostViolatedBranchPoint returns the free index whose relaxed value
// is closest to 1/2. Ties are broken deterministically on largest
// index: a less-than-or-equal comparison lets the last index
// encountered at the minimum distance win the scan.
func mostViolatedBranchPoint(n int, node Node) int {
	best := -1
	bestDist := math.Inf(1)

	for i := 0; i < n; i++ {
		if !node.fixed.isFree(i) {
			continue
		}
		dist := math.Abs(node.solution[i] - 0.5)
		if dist <= bestDist {
			bestDist = dist
			best = i
		}
	}

	if best < 0 {
		panic("qubobb: no free variable to branch on")
	}
	return best
}

// randomBranchPoint draws a uniformly random free index using a
// deterministic stream reseeded from (seed, nodesVisited). If the
// drawn index is not free, it scans forward and wraps around.
func randomBranchPoint(n int, node Node, seed uint64, nodesVisited uint64) int {
	source := prng.New(seed, nodesVisited)
	start := int(source.NextU64() % uint64(n))

	for i := start; i < n; i++ {
		if node.fixed.isFree(i) {
			return i
		}
	}
	for i := 0; i < start; i++ {
		if node.fixed.isFree(i) {
			return i
		}
	}
	panic("qubobb: no free variable to branch on")
}

// worstApproximationBranchPoint picks the free variable whose worse
// rounded completion raises the objective the most: for each free i,
// every other free variable is rounded to 0 in one completion and to 1
// in the other, and the candidate objective deltas of flipping i in
// each completion are compared; the winner maximizes the minimum of
// the two deltas.
func worstApproximationBranchPoint(p *Problem, node Node) int {
	zeroBuf := make([]float64, p.n)
	oneBuf := make([]float64, p.n)
	for i := 0; i < p.n; i++ {
		if v, fixed := node.fixed[i]; fixed {
			zeroBuf[i] = v
			oneBuf[i] = v
		} else {
			zeroBuf[i] = 0
			oneBuf[i] = 1
		}
	}

	flipsZero := oneFlipDeltas(p, zeroBuf)
	flipsOne := oneFlipDeltas(p, oneBuf)

	best := -1
	bestGain := math.Inf(-1)
	for i := 0; i < p.n; i++ {
		if !node.fixed.isFree(i) {
			continue
		}
		gain := math.Min(flipsZero[i], flipsOne[i])
		if gain > bestGain {
			bestGain = gain
			best = i
		}
	}

	if best < 0 {
		panic("qubobb: no free variable to branch on")
	}
	return best
}

// oneFlipDeltas computes, for every index i, the change in objective
// resulting from flipping x_i (1 - x_i) starting from x, holding
// every other coordinate fixed at x's value.
func oneFlipDeltas(p *Problem, x []float64) []float64 {
	base := p.eval(x)
	deltas := make([]float64, p.n)
	flipped := append([]float64(nil), x...)

	for i := 0; i < p.n; i++ {
		original := flipped[i]
		flipped[i] = 1 - original
		deltas[i] = p.eval(flipped) - base
		flipped[i] = original
	}

	return deltas
}
