package beamstats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/beamstats"
)

// TestWeightedStdDev_EqualWeights checks that any constant weight vector
// reproduces the plain population standard deviation.
func TestWeightedStdDev_EqualWeights(t *testing.T) {
	values := []float64{1.2, 3.4, 2.2, 5.0, 4.4}

	want := beamstats.StdDev(values)
	for _, w := range []float64{1, 2, 0.5, 17} {
		weights := make([]float64, len(values))
		for i := range weights {
			weights[i] = w
		}
		got := beamstats.WeightedStdDev(values, weights)
		assert.InDelta(t, want, got, 1e-12, "constant weight %v", w)
	}
}

func TestWeightedStdDev_Empty(t *testing.T) {
	assert.Equal(t, 0.0, beamstats.WeightedStdDev(nil, nil))
	assert.Equal(t, 0.0, beamstats.WeightedStdDev([]float64{}, []float64{}))
}

func TestWeightedStdDev_ZeroWeightSum(t *testing.T) {
	assert.Equal(t, 0.0, beamstats.WeightedStdDev([]float64{1, 2, 3}, []float64{0, 0, 0}))
}

func TestWeightedStdDev_Known(t *testing.T) {
	// Weighted by hand: μ = (1·1 + 3·3)/4 = 2.5,
	// var = (1·(1−2.5)² + 3·(3−2.5)²)/4 = (2.25 + 0.75)/4 = 0.75.
	got := beamstats.WeightedStdDev([]float64{1, 3}, []float64{1, 3})
	assert.InDelta(t, 0.8660254037844386, got, 1e-12)
}

func TestStdDev_Population(t *testing.T) {
	// Population (not sample) convention: divide by n.
	// values {2, 4}: μ = 3, var = (1+1)/2 = 1.
	assert.InDelta(t, 1.0, beamstats.StdDev([]float64{2, 4}), 1e-12)
	assert.Equal(t, 0.0, beamstats.StdDev(nil))
}
