// Package fit fits the parabolic spread-vs-w dependence of a solenoid
// scan and back-solves the fitted coefficients into beam-matrix elements
// and emittance.
package fit

import (
	"errors"
	"fmt"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewPoints reports a fit attempted with fewer samples than
	// the three free parameters of the parabola.
	ErrTooFewPoints = errors.New("fit: need at least 3 (w, spread) points for a parabola")

	// ErrLengthMismatch reports w and spread slices of different lengths.
	ErrLengthMismatch = errors.New("fit: w and spread lengths differ")

	// ErrDegenerateSpread reports identical observed spreads: SS_tot is
	// zero and R² is undefined.
	ErrDegenerateSpread = errors.New("fit: all spread values identical, R² undefined")
)

// Parabola holds the coefficients of spread ≈ A·w² + B·w + C.
type Parabola struct {
	A, B, C float64
}

// At evaluates the parabola at w.
func (p Parabola) At(w float64) float64 {
	return p.A*w*w + p.B*w + p.C
}

// Parabolic fits spread ≈ a·w² + b·w + c by Levenberg-Marquardt least
// squares with a numerical Jacobian. The model is linear in its
// parameters, so the minimizer is the ordinary least-squares solution.
func Parabolic(w, spread []float64) (Parabola, error) {
	if len(w) != len(spread) {
		return Parabola{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(w), len(spread))
	}
	if len(w) < 3 {
		return Parabola{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(w))
	}

	f := func(dst, guess []float64) {
		a, b, c := guess[0], guess[1], guess[2]
		for i := range w {
			dst[i] = a*w[i]*w[i] + b*w[i] + c - spread[i]
		}
	}
	jacobian := lm.NumJac{Func: f}

	problem := lm.LMProblem{
		Dim:        3,
		Size:       len(w),
		Func:       f,
		Jac:        jacobian.Jac,
		InitParams: []float64{0, 0, stat.Mean(spread, nil)},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(problem, &lm.Settings{Iterations: 100, ObjectiveTol: 1e-16})
	if err != nil {
		return Parabola{}, fmt.Errorf("fit: parabola did not converge: %w", err)
	}
	return Parabola{A: results.X[0], B: results.X[1], C: results.X[2]}, nil
}

// RSquared computes the coefficient of determination
// 1 − SS_res/SS_tot. When every observed value is identical SS_tot is
// zero and ErrDegenerateSpread is returned instead of a made-up number.
func RSquared(observed, predicted []float64) (float64, error) {
	mean := stat.Mean(observed, nil)

	var ssRes, ssTot float64
	for i, y := range observed {
		r := y - predicted[i]
		ssRes += r * r
		d := y - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0, ErrDegenerateSpread
	}
	return 1 - ssRes/ssTot, nil
}
