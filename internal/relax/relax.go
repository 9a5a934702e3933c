// Package relax implements the convex QP relaxation oracle used as the
// lower-bound source at every branch-and-bound node. Given a QUBO's
// (Q, c) and a partial fixing, it solves
//
//	minimize   x^T Q x + c^T x
//	subject to x_i = v_i            for every fixed i
//	           0 <= x_i <= 1         for every free i
//
// and returns the primal objective and point. The returned objective
// is a valid lower bound for every integer-feasible point consistent
// with the fixing, because {0,1}^n restricted by the fixing is a
// subset of the relaxed box.
package relax

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrSubproblemFailed is returned when the relaxation could not be
// solved to a conclusive point. The engine fathoms such a node with an
// unbounded bound so it is still pruned, but the run can no longer
// claim proven optimality.
var ErrSubproblemFailed = errors.New("relax: subproblem relaxation failed")

const (
	maxProjectedGradientIters = 2000
	convergenceTol            = 1e-9
)

// Result is the outcome of solving one node's relaxation.
type Result struct {
	Objective float64
	X         []float64
}

// Solve constructs and solves the node QP for Q, c (both over all n
// original variables) given fixed, the set of equality-constrained
// indices. It never panics on a solver failure: failures are reported
// through the error return so the caller can fathom the node safely.
func Solve(Q *mat.Dense, c []float64, fixed map[int]float64) (Result, error) {
	n := len(c)

	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := fixed[i]; !ok {
			free = append(free, i)
		}
	}

	x := make([]float64, n)
	for i, v := range fixed {
		x[i] = v
	}

	if len(free) == 0 {
		return Result{Objective: evalFull(Q, c, x), X: x}, nil
	}

	qff, cPrime := reduce(Q, c, fixed, free)

	var y []float64
	var err error
	if allZero(qff) {
		// The free submatrix vanishes: the relaxation is a pure LP
		// over the unit box. Solve it exactly with the simplex method
		// rather than an iterative approximation.
		y, err = solveLinearBox(cPrime)
	} else {
		y, err = projectedGradient(qff, cPrime)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSubproblemFailed, err)
	}

	for k, i := range free {
		x[i] = y[k]
	}

	return Result{Objective: evalFull(Q, c, x), X: x}, nil
}

func evalFull(Q *mat.Dense, c []float64, x []float64) float64 {
	xv := mat.NewVecDense(len(x), x)
	var qx mat.VecDense
	qx.MulVec(Q, xv)
	quad := mat.Dot(xv, &qx)

	lin := 0.0
	for i, ci := range c {
		lin += ci * x[i]
	}
	return quad + lin
}

// reduce extracts the free-free submatrix of Q and folds the
// fixed-variable contribution into an effective linear term. For a
// symmetric Q (as the engine passes after preprocessing),
//
//	f(x) = y^T Qff y + c'^T y + const
//
// where c'_i = c_i + 2 * sum_{j fixed} Q[i][j] * v_j.
func reduce(Q *mat.Dense, c []float64, fixed map[int]float64, free []int) (qff *mat.Dense, cPrime []float64) {
	m := len(free)
	qff = mat.NewDense(m, m, nil)
	cPrime = make([]float64, m)

	for a, i := range free {
		cPrime[a] = c[i]
		for j, v := range fixed {
			cPrime[a] += 2 * Q.At(i, j) * v
		}
		for b, j := range free {
			qff.Set(a, b, Q.At(i, j))
		}
	}

	return qff, cPrime
}

func allZero(m *mat.Dense) bool {
	r, cc := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cc; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// solveLinearBox solves minimize c^T y s.t. 0 <= y <= 1 by converting
// the box to slack-variable equalities (y_i + s_i = 1) and handing the
// result to gonum's simplex solver.
func solveLinearBox(c []float64) ([]float64, error) {
	m := len(c)
	if m == 0 {
		return nil, nil
	}

	nAll := 2 * m
	cFull := make([]float64, nAll)
	copy(cFull, c)

	A := mat.NewDense(m, nAll, nil)
	b := make([]float64, m)
	for i := 0; i < m; i++ {
		A.Set(i, i, 1)
		A.Set(i, m+i, 1)
		b[i] = 1
	}

	_, xFull, err := lp.Simplex(cFull, A, b, 0, nil)
	if err != nil {
		return nil, err
	}

	return xFull[:m], nil
}

// projectedGradient solves the general convex box QP
//
//	minimize y^T Q y + c^T y   s.t. 0 <= y <= 1
//
// by projected gradient descent with a fixed step derived from an
// upper bound on the Lipschitz constant of the gradient (Q is PSD
// after the caller's convexification pass, so the iteration
// converges).
func projectedGradient(Q *mat.Dense, c []float64) ([]float64, error) {
	m := len(c)

	lipschitz := 2 * frobeniusNorm(Q)
	if lipschitz == 0 {
		// Q is zero but allZero already short-circuits that case;
		// guard anyway against a degenerate reduced problem.
		lipschitz = 1
	}
	step := 1.0 / lipschitz

	y := make([]float64, m)
	for i := range y {
		y[i] = 0.5
	}

	grad := make([]float64, m)
	next := make([]float64, m)

	for iter := 0; iter < maxProjectedGradientIters; iter++ {
		computeGradient(Q, c, y, grad)

		maxDelta := 0.0
		for i := range y {
			v := y[i] - step*grad[i]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			next[i] = v
			if d := v - y[i]; d > maxDelta {
				maxDelta = d
			} else if -d > maxDelta {
				maxDelta = -d
			}
		}
		copy(y, next)

		if maxDelta < convergenceTol {
			return y, nil
		}
	}

	return y, nil
}

func computeGradient(Q *mat.Dense, c []float64, y, grad []float64) {
	yv := mat.NewVecDense(len(y), y)
	var qy mat.VecDense
	qy.MulVec(Q, yv)
	for i := range grad {
		grad[i] = 2*qy.AtVec(i) + c[i]
	}
}

func frobeniusNorm(m *mat.Dense) float64 {
	r, cc := m.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < cc; j++ {
			v := m.At(i, j)
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}
