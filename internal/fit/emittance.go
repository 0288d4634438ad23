package fit

import (
	"math"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/physics"
)

// Result is the emittance solution for one transverse axis, derived
// from the full (w, spread) set of a scan. Immutable after Solve.
type Result struct {
	Axis string

	// Fitted parabola spread ≈ A·w² + B·w + C.
	Coeffs Parabola

	// Beam-matrix elements: σ₀ = A, σ₁ = B/2d, σ₂ = C/d².
	Sigma0, Sigma1, Sigma2 float64

	// Emittance = √(σ₀σ₂ − σ₁²), m·rad. NaN when the radicand is
	// negative; NegativeRadicand is set so callers can report the
	// degeneracy instead of plotting a silent NaN.
	Emittance        float64
	NormEmittance    float64
	NegativeRadicand bool

	RSquared  float64
	Predicted []float64
}

// Solve fits the (w, spread) pairs of one axis and back-solves the
// coefficients into beam-matrix elements and emittance. driftLength is
// the optic's d in meters; rel carries the run's shared γ and β.
//
// A negative radicand σ₀σ₂ − σ₁² is a physical outcome of noisy data,
// not an error: the emittance comes back NaN with NegativeRadicand set,
// never clamped to zero. Fit failures and a degenerate R² return an
// error and no Result.
func Solve(axis string, w, spread []float64, driftLength float64, rel physics.Relativistic) (*Result, error) {
	coeffs, err := Parabolic(w, spread)
	if err != nil {
		return nil, err
	}

	predicted := make([]float64, len(w))
	for i, x := range w {
		predicted[i] = coeffs.At(x)
	}

	r2, err := RSquared(spread, predicted)
	if err != nil {
		return nil, err
	}

	sigma0 := coeffs.A
	sigma1 := coeffs.B / (2 * driftLength)
	sigma2 := coeffs.C / (driftLength * driftLength)

	radicand := sigma0*sigma2 - sigma1*sigma1
	emittance := math.Sqrt(radicand) // NaN when radicand < 0

	return &Result{
		Axis:             axis,
		Coeffs:           coeffs,
		Sigma0:           sigma0,
		Sigma1:           sigma1,
		Sigma2:           sigma2,
		Emittance:        emittance,
		NormEmittance:    rel.Beta * rel.Gamma * emittance,
		NegativeRadicand: radicand < 0,
		RSquared:         r2,
		Predicted:        predicted,
	}, nil
}

// TotalEmittance combines the two axis emittances into a single figure
// as their geometric mean.
func TotalEmittance(x, y float64) float64 {
	return math.Sqrt(x * y)
}
