// Package physics holds the physical constants and relativistic beam
// optics used by the solenoid-scan emittance analysis.
//
// All quantities are SI: energies in joules, lengths in meters, fields
// in tesla.
package physics

import (
	"errors"
	"fmt"
	"math"
)

// Physical constants (CODATA 2018).
const (
	SpeedOfLight     = 299792458.0      // m/s
	ElectronMass     = 9.1093837015e-31 // kg
	ElementaryCharge = 1.602176634e-19  // C
)

// RestEnergy is the electron rest energy m·c² in joules.
const RestEnergy = ElectronMass * SpeedOfLight * SpeedOfLight

// ErrSubluminal reports a beam energy at or below the electron rest
// energy, for which β is undefined.
var ErrSubluminal = errors.New("physics: energy at or below rest energy, beta undefined")

// Relativistic is the Lorentz factor γ and velocity ratio β of a beam.
type Relativistic struct {
	Gamma float64
	Beta  float64
}

// RelativisticParams computes γ = ε/(m·c²) and β = √(1 − 1/γ²) for a
// beam energy in joules. Returns ErrSubluminal when γ ≤ 1.
func RelativisticParams(energy float64) (Relativistic, error) {
	gamma := energy / RestEnergy
	if gamma <= 1 {
		return Relativistic{}, fmt.Errorf("%w: epsilon = %.6g J, gamma = %.6g", ErrSubluminal, energy, gamma)
	}
	beta := math.Sqrt(1 - 1/(gamma*gamma))
	return Relativistic{Gamma: gamma, Beta: beta}, nil
}

// Optic is the fixed drift-and-solenoid geometry of one scan. It is
// read-only for the whole run.
type Optic struct {
	DriftLength    float64 // drift length d, m
	SolenoidLength float64 // solenoid effective length l, m
	ChargeMultiple float64 // charge multiple Z
	Energy         float64 // beam energy ε, J
}

// FocusingParameters maps each raw field strength B to the dimensionless
// focusing parameter
//
//	w = 1 − d·l·(e·Z·B)² / (2·m·c·γ·β)²
//
// with γ and β derived once from the optic's energy. One w per input
// field, in input order. At B = 0 the parameter is exactly 1.
func FocusingParameters(fields []float64, optic Optic) ([]float64, error) {
	rel, err := RelativisticParams(optic.Energy)
	if err != nil {
		return nil, err
	}
	denom := 2 * ElectronMass * SpeedOfLight * rel.Gamma * rel.Beta
	denom *= denom

	w := make([]float64, len(fields))
	for i, b := range fields {
		p := ElementaryCharge * optic.ChargeMultiple * b
		w[i] = 1 - optic.DriftLength*optic.SolenoidLength*p*p/denom
	}
	return w, nil
}
