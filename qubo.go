package qubobb

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors surfaced to the caller for malformed problem input.
// These expose package-level sentinel errors for conditions the
// solver will never recover from internally.
var (
	ErrEmptyProblem      = errors.New("qubobb: problem has zero variables")
	ErrIndexOutOfRange   = errors.New("qubobb: quadratic coefficient index out of range")
	ErrNonFiniteCoeff    = errors.New("qubobb: coefficient is NaN or infinite")
	ErrLinearTermLength  = errors.New("qubobb: linear term length does not match n")
	ErrEigenDecompFailed = errors.New("qubobb: eigendecomposition of the Hessian did not converge")
)

// Problem is a Quadratic Unconstrained Binary Optimization instance:
//
//	minimize f(x) = x^T Q x + c^T x   over x in {0,1}^n
//
// A Problem is built once by NewProblem and is immutable thereafter;
// symmetrize and convexify return new Problem values rather than
// mutating the receiver.
type Problem struct {
	n int
	Q *mat.Dense
	c []float64
}

// NewProblem constructs a Problem from the flat vector-of-triples
// representation described for problem input: i/j index pairs with
// their quadratic coefficients, plus a dense linear term of length n.
// Construction rejects malformed input immediately (spec error kind
// "Malformed problem"): this is fatal to the call, not something the
// engine can absorb mid-solve.
func NewProblem(n int, iIdx, jIdx []int, qVals []float64, c []float64) (*Problem, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrEmptyProblem, n)
	}
	if len(c) != n {
		return nil, fmt.Errorf("%w: got %d want %d", ErrLinearTermLength, len(c), n)
	}
	if len(iIdx) != len(jIdx) || len(iIdx) != len(qVals) {
		return nil, fmt.Errorf("qubobb: i/j/q triples have mismatched lengths (%d, %d, %d)", len(iIdx), len(jIdx), len(qVals))
	}

	Q := mat.NewDense(n, n, nil)
	for k := range iIdx {
		i, j, q := iIdx[k], jIdx[k], qVals[k]
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("%w: (%d,%d) for n=%d", ErrIndexOutOfRange, i, j, n)
		}
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return nil, fmt.Errorf("%w: Q[%d,%d]=%v", ErrNonFiniteCoeff, i, j, q)
		}
		Q.Set(i, j, Q.At(i, j)+q)
	}

	cCopy := make([]float64, n)
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: c[%d]=%v", ErrNonFiniteCoeff, i, v)
		}
		cCopy[i] = v
	}

	return &Problem{n: n, Q: Q, c: cCopy}, nil
}

// N returns the number of binary variables.
func (p *Problem) N() int { return p.n }

// eval returns x^T Q x + c^T x for a dense vector x (real-valued so the
// same routine serves both 0/1 evaluation and relaxation checks).
func (p *Problem) eval(x []float64) float64 {
	xv := mat.NewVecDense(p.n, x)
	var qx mat.VecDense
	qx.MulVec(p.Q, xv)

	quad := mat.Dot(xv, &qx)

	lin := 0.0
	for i, ci := range p.c {
		lin += ci * x[i]
	}
	return quad + lin
}

// symmetrize produces an equivalent Problem whose Q equals
// 1/2 (Q + Q^T). Required because the persistence engine and the QP
// oracle both assume a symmetric Q.
func (p *Problem) symmetrize() *Problem {
	var qt mat.Dense
	qt.CloneFrom(p.Q.T())

	var sym mat.Dense
	sym.Add(p.Q, &qt)
	sym.Scale(0.5, &sym)

	return &Problem{n: p.n, Q: &sym, c: append([]float64(nil), p.c...)}
}

// minHessianEigenvalue returns the smallest eigenvalue of 2Q, the
// Hessian of f treated as a real-valued quadratic form. Dense
// computation via gonum's symmetric eigendecomposition is acceptable
// for the sizes this solver targets.
func (p *Problem) minHessianEigenvalue() (float64, error) {
	var hessian mat.SymDense
	n := p.n
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = 2 * p.Q.At(i, j)
		}
	}
	hessian = *mat.NewSymDense(n, data)

	var eig mat.EigenSym
	ok := eig.Factorize(&hessian, false)
	if !ok {
		return 0, ErrEigenDecompFailed
	}

	values := eig.Values(nil)
	min := math.Inf(1)
	for _, v := range values {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// convexify returns a Problem with Q' = Q + (shift/2)*I and
// c' = c - (shift/2)*1, such that f agrees with the original on
// {0,1}^n (because x_i^2 = x_i there, diagonal shifts move freely
// between Q and c).
func (p *Problem) convexify(shift float64) *Problem {
	var shifted mat.Dense
	shifted.CloneFrom(p.Q)
	for i := 0; i < p.n; i++ {
		shifted.Set(i, i, shifted.At(i, i)+shift/2)
	}

	cNew := make([]float64, p.n)
	for i, ci := range p.c {
		cNew[i] = ci - shift/2
	}

	return &Problem{n: p.n, Q: &shifted, c: cNew}
}

// preprocess symmetrizes the problem and convexifies it if the
// Hessian is not already positive definite (lambda_min <= 0).
// The minimum epsilon of 1.0 above |lambda_min| matches the source
// algorithm's shift exactly.
func (p *Problem) preprocess() (*Problem, error) {
	sym := p.symmetrize()

	lambdaMin, err := sym.minHessianEigenvalue()
	if err != nil {
		return nil, err
	}

	if lambdaMin > 0 {
		return sym, nil
	}

	shift := math.Abs(lambdaMin) + 1.0
	return sym.convexify(shift), nil
}
