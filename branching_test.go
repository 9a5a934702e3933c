package qubobb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_branchStrategyFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want BranchStrategy
	}{
		{name: "FirstNotFixed", in: "FirstNotFixed", want: FirstNotFixed},
		{name: "MostViolated", in: "MostViolated", want: MostViolated},
		{name: "Random", in: "Random", want: Random},
		{name: "WorstApproximation", in: "WorstApproximation", want: WorstApproximation},
		{name: "unknown defaults", in: "something-else", want: FirstNotFixed},
		{name: "empty defaults", in: "", want: FirstNotFixed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, branchStrategyFromName(tc.in))
		})
	}
}

func Test_firstNotFixedBranchPoint(t *testing.T) {
	node := Node{fixed: Fixing{0: 1.0, 1: 0.0}}
	assert.Equal(t, 2, firstNotFixedBranchPoint(4, node))
}

func Test_mostViolatedBranchPoint_ties(t *testing.T) {
	// indices 0 and 2 are equally 0.1 away from 0.5; largest index wins.
	node := Node{
		fixed:    Fixing{1: 1.0},
		solution: []float64{0.4, 0.9, 0.6, 0.0},
	}
	assert.Equal(t, 2, mostViolatedBranchPoint(4, node))
}

func Test_allStrategies_areComplete(t *testing.T) {
	p, err := NewProblem(4, []int{0, 1, 2}, []int{1, 2, 3}, []float64{1, -1, 2}, []float64{-1, 2, -3, 0})
	require.NoError(t, err)
	preprocessed, err := p.preprocess()
	require.NoError(t, err)

	node := Node{
		fixed:    Fixing{1: 1.0},
		solution: []float64{0.3, 1.0, 0.55, 0.8},
	}

	for _, strategy := range []BranchStrategy{FirstNotFixed, MostViolated, Random, WorstApproximation} {
		got := chooseBranchVariable(strategy, preprocessed, node, DefaultSeed, 7)
		assert.True(t, node.fixed.isFree(got), "strategy %v returned a fixed index %d", strategy, got)
	}
}

func Test_randomBranchPoint_isDeterministic(t *testing.T) {
	node := Node{fixed: Fixing{}}
	a := randomBranchPoint(10, node, DefaultSeed, 3)
	b := randomBranchPoint(10, node, DefaultSeed, 3)
	assert.Equal(t, a, b)
}

func Test_randomBranchPoint_wrapsAroundFixedIndices(t *testing.T) {
	node := Node{fixed: Fixing{1: 1, 2: 1, 3: 1}}
	for seed := uint64(0); seed < 20; seed++ {
		got := randomBranchPoint(4, node, seed, 0)
		assert.Equal(t, 0, got)
	}
}
