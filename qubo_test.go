package qubobb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblem_rejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		iIdx  []int
		jIdx  []int
		qVals []float64
		c     []float64
	}{
		{
			name: "zero variables",
			n:    0,
			c:    nil,
		},
		{
			name:  "index out of range",
			n:     2,
			iIdx:  []int{2},
			jIdx:  []int{0},
			qVals: []float64{1},
			c:     []float64{0, 0},
		},
		{
			name: "linear term wrong length",
			n:    2,
			c:    []float64{1},
		},
		{
			name:  "NaN coefficient",
			n:     1,
			iIdx:  []int{0},
			jIdx:  []int{0},
			qVals: []float64{nan()},
			c:     []float64{0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProblem(tc.n, tc.iIdx, tc.jIdx, tc.qVals, tc.c)
			assert.Error(t, err)
		})
	}
}

func nan() float64 {
	var z float64
	return z / z
}

func TestProblem_eval(t *testing.T) {
	// f(x) = 2*x0*x1 - x0 - x1
	p, err := NewProblem(2, []int{0}, []int{1}, []float64{2}, []float64{-1, -1})
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.eval([]float64{0, 0}))
	assert.Equal(t, -1.0, p.eval([]float64{1, 0}))
	assert.Equal(t, -1.0, p.eval([]float64{0, 1}))
	assert.Equal(t, 0.0, p.eval([]float64{1, 1}))
}

func TestSymmetrizeEquivalence(t *testing.T) {
	// Q off-diagonal entirely in the upper triangle: symmetrize should
	// not change f on any 0/1 point.
	p, err := NewProblem(2, []int{0}, []int{1}, []float64{2}, []float64{-1, -1})
	require.NoError(t, err)
	sym := p.symmetrize()

	for _, x := range [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		assert.InDelta(t, p.eval(x), sym.eval(x), 1e-9)
	}
}

func TestConvexifyEquivalence(t *testing.T) {
	p, err := NewProblem(2, []int{0, 1}, []int{1, 0}, []float64{1, 1}, []float64{-1, -1})
	require.NoError(t, err)

	for _, shift := range []float64{0, 1, 5} {
		convexified := p.convexify(shift)
		for _, x := range [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
			assert.InDelta(t, p.eval(x), convexified.eval(x), 1e-9)
		}
	}
}

func TestPreprocess_convexifiesNonConvexProblem(t *testing.T) {
	// off-diagonal -1 coupling makes 2Q indefinite.
	p, err := NewProblem(2, []int{0, 1}, []int{1, 0}, []float64{-1, -1}, []float64{0, 0})
	require.NoError(t, err)

	preprocessed, err := p.preprocess()
	require.NoError(t, err)

	lambdaMin, err := preprocessed.minHessianEigenvalue()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lambdaMin, 0.0)

	for _, x := range [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		assert.InDelta(t, p.eval(x), preprocessed.eval(x), 1e-9)
	}
}
