package qubobb

// persist extends fixing to a fixed point by repeatedly applying a
// first-order sufficient condition for optimality to every currently
// free variable. The engine is monotone (fixing is never reduced) and
// conservative (a variable is fixed only when its optimal value cannot
// be ambiguous given the remaining box), which makes it safe to call
// at every node.
func persist(p *Problem, fixing Fixing) Fixing {
	current := fixing.clone()

	for pass := 0; pass < p.n; pass++ {
		changed := false

		for i := 0; i < p.n; i++ {
			if !current.isFree(i) {
				continue
			}

			lo, hi := partialDerivativeRange(p, current, i)

			switch {
			case lo == 0 && hi == 0:
				// derivative is identically zero: genuinely ambiguous, stays free.
			case hi <= 0:
				current[i] = 1.0
				changed = true
			case lo >= 0:
				current[i] = 0.0
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return current
}

// partialDerivativeRange returns the minimum and maximum value that
// d f / d x_i can take, given fixing, as every free variable (including
// i itself) ranges independently over [0,1] and every fixed variable
// sits at its assigned value.
//
// Since Q is symmetric, grad f(x) = 2Qx + c, so
//
//	d f / d x_i = 2 * sum_j Q[i][j] * x_j + c_i
//
// Each term is bounded independently (interval arithmetic over a sum
// of terms linear in independent box variables), then summed.
func partialDerivativeRange(p *Problem, fixing Fixing, i int) (lo, hi float64) {
	lo, hi = p.c[i], p.c[i]

	for j := 0; j < p.n; j++ {
		coeff := 2 * p.Q.At(i, j)
		if coeff == 0 {
			continue
		}

		if v, fixed := fixing[j]; fixed {
			term := coeff * v
			lo += term
			hi += term
			continue
		}

		// free variable j ranges over [0,1]: term ranges over
		// [min(0,coeff), max(0,coeff)].
		if coeff > 0 {
			hi += coeff
		} else {
			lo += coeff
		}
	}

	return lo, hi
}
