// Package beamstats computes the spread statistics that reduce one
// measurement table to a single number per transverse axis.
package beamstats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WeightedStdDev returns the weighted population standard deviation of
// values: √(Σwᵢ(xᵢ−μ)²/Σwᵢ) with μ = Σwᵢxᵢ/Σwᵢ.
//
// An empty value slice or an all-zero weight slice yields 0; the guard
// is what keeps the μ division well defined. values and weights must be
// the same length.
func WeightedStdDev(values, weights []float64) float64 {
	if len(values) == 0 || floats.Sum(weights) == 0 {
		return 0
	}
	return stat.PopStdDev(values, weights)
}

// StdDev returns the unweighted population standard deviation, used for
// modelling-mode tables where every row carries unit weight. Empty input
// yields 0.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}
