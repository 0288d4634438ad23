package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/physics"
)

// TestRelativisticParams_TwiceRestEnergy pins the γ = 2 reference point:
// β must come out as √0.75.
func TestRelativisticParams_TwiceRestEnergy(t *testing.T) {
	rel, err := physics.RelativisticParams(2 * physics.RestEnergy)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, rel.Gamma, 1e-12)
	assert.InDelta(t, math.Sqrt(0.75), rel.Beta, 1e-12)
}

func TestRelativisticParams_Subluminal(t *testing.T) {
	// At the rest energy itself gamma is exactly 1 and beta is undefined.
	_, err := physics.RelativisticParams(physics.RestEnergy)
	assert.ErrorIs(t, err, physics.ErrSubluminal)

	_, err = physics.RelativisticParams(0.5 * physics.RestEnergy)
	assert.ErrorIs(t, err, physics.ErrSubluminal)
}

func TestFocusingParameters_ZeroField(t *testing.T) {
	optic := physics.Optic{
		DriftLength:    0.5,
		SolenoidLength: 0.01,
		ChargeMultiple: 1,
		Energy:         1.6e-13,
	}
	w, err := physics.FocusingParameters([]float64{0}, optic)
	require.NoError(t, err)
	require.Len(t, w, 1)
	assert.Equal(t, 1.0, w[0], "w(B=0) must be exactly 1")
}

func TestFocusingParameters_OrderAndMonotonicity(t *testing.T) {
	optic := physics.Optic{
		DriftLength:    0.5,
		SolenoidLength: 0.01,
		ChargeMultiple: 1,
		Energy:         1.6e-13,
	}
	w, err := physics.FocusingParameters([]float64{1, 2, 3}, optic)
	require.NoError(t, err)
	require.Len(t, w, 3)

	// w falls off as B² from 1, so stronger fields give smaller w.
	assert.Less(t, w[1], w[0])
	assert.Less(t, w[2], w[1])
	assert.Less(t, w[0], 1.0)

	// The quadratic dependence: 1-w scales with B².
	assert.InEpsilon(t, 4*(1-w[0]), 1-w[1], 1e-12)
	assert.InEpsilon(t, 9*(1-w[0]), 1-w[2], 1e-12)
}

func TestFocusingParameters_SubluminalEnergy(t *testing.T) {
	optic := physics.Optic{DriftLength: 0.5, SolenoidLength: 0.01, ChargeMultiple: 1, Energy: physics.RestEnergy}
	_, err := physics.FocusingParameters([]float64{1, 2}, optic)
	assert.ErrorIs(t, err, physics.ErrSubluminal)
}
