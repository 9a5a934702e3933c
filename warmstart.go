package qubobb

import "math/rand"

// The generators below are warm-start collaborators, not part of the
// B&B core, and exist only to hand a candidate vector to
// Options.WithWarmStart.

// CentralPoint returns the all-0.5 vector: the canonical non-binary
// starting point for variables with no other information.
func CentralPoint(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5
	}
	return x
}

// RandomPoint returns a vector of independent uniform(0,1) draws from
// a caller-supplied deterministic generator, for reproducible
// fractional warm starts.
func RandomPoint(n int, rng *rand.Rand) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}
	return x
}

// RandomBinaryPoint returns a 0/1 vector where each variable is 1 with
// probability sparsity, independently.
func RandomBinaryPoint(n int, rng *rand.Rand, sparsity float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		if rng.Float64() < sparsity {
			x[i] = 1.0
		}
	}
	return x
}
