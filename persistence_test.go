package qubobb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersist_fullySeparableProblem(t *testing.T) {
	// f(x) = x0 + x1: both derivatives are constant and positive, so
	// both variables must persist to 0.
	p, err := NewProblem(2, nil, nil, nil, []float64{1, 1})
	require.NoError(t, err)

	got := persist(p, Fixing{})
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 0.0, got[1])
}

func TestPersist_negativeLinearTermFixesToOne(t *testing.T) {
	p, err := NewProblem(1, nil, nil, nil, []float64{-2})
	require.NoError(t, err)

	got := persist(p, Fixing{})
	assert.Equal(t, 1.0, got[0])
}

func TestPersist_ambiguousDerivativeStaysFree(t *testing.T) {
	// f(x) = 2*x0*x1 - x0 - x1: the derivative w.r.t. each variable
	// ranges over [-1, 1] (straddling zero), so neither is persistent.
	p, err := NewProblem(2, []int{0, 1}, []int{1, 0}, []float64{1, 1}, []float64{-1, -1})
	require.NoError(t, err)

	got := persist(p, Fixing{})
	assert.True(t, got.isFree(0))
	assert.True(t, got.isFree(1))
}

func TestPersist_monotoneAndIdempotent(t *testing.T) {
	p, err := NewProblem(4, []int{0, 1, 2}, []int{1, 2, 3}, []float64{1, -1, 2}, []float64{-1, 2, -3, 0})
	require.NoError(t, err)
	preprocessed, err := p.preprocess()
	require.NoError(t, err)

	fixings := []Fixing{
		{},
		{0: 1.0},
		{1: 0.0},
		{0: 1.0, 2: 0.0},
	}

	for _, f := range fixings {
		once := persist(preprocessed, f)
		for i, v := range f {
			assert.Equal(t, v, once[i], "persist must not remove an existing fixing")
		}

		twice := persist(preprocessed, once)
		assert.Equal(t, once, twice, "persist must be idempotent at its own fixed point")
	}
}
