// Package prng provides the small deterministic generator used by the
// Random branching strategy: reseeded per call from (seed,
// nodesVisited), never carried as solver state.
package prng

import "math/rand"

// Source is a reseedable 64-bit generator.
type Source struct {
	r *rand.Rand
}

// New builds a Source deterministically seeded from seed XOR
// nodesVisited.
func New(seed, nodesVisited uint64) *Source {
	s := seed ^ nodesVisited
	return &Source{r: rand.New(rand.NewSource(int64(s)))}
}

// NextU64 returns the next pseudo-random 64-bit value from the stream.
func (s *Source) NextU64() uint64 {
	return s.r.Uint64()
}
