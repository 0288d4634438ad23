// Package pipeline runs the full solenoid-scan reduction: per-file
// table reduction, the focusing-parameter transform, and the per-axis
// parabolic fit and emittance back-solve.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/fit"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/physics"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/table"
)

// ErrConfig reports a configuration fault that aborts the run before
// any computation.
var ErrConfig = errors.New("pipeline: configuration fault")

// Params is the full parameter bundle of one run. It is read-only once
// Run starts.
type Params struct {
	DriftLength    float64 // d, m
	SolenoidLength float64 // l, m
	ChargeMultiple float64 // Z
	Energy         float64 // ε, J

	Mode        table.Mode
	DataDir     string
	DataFiles   []string  // one table per field value, same order
	FieldValues []float64 // raw solenoid field strengths B

	// SkipColumnMismatch downgrades the column-count data-integrity
	// fault from run-fatal to a per-file skip.
	SkipColumnMismatch bool
}

// Outcome is the result of one run.
//
// W is parallel to Params.FieldValues. Spreads, Fields and FitW are
// parallel to the surviving tables: files that were missing (or skipped
// on a column mismatch) contribute nothing, so these can be shorter
// than W while preserving the original relative order.
type Outcome struct {
	Rel physics.Relativistic

	W []float64 // one per configured field value

	Fields  []float64 // field values of surviving tables
	FitW    []float64 // w values of surviving tables
	SpreadX []float64
	SpreadY []float64

	// Per-axis emittance solutions; nil when that axis's fit failed.
	X *fit.Result
	Y *fit.Result
}

// Run executes the whole pipeline. Fatal faults (configuration,
// data-integrity, subluminal energy) return an error and no Outcome;
// per-axis fit failures are reported through the observer and leave the
// axis result nil while the other axis continues.
func Run(p Params, obs Observer) (*Outcome, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	optic := physics.Optic{
		DriftLength:    p.DriftLength,
		SolenoidLength: p.SolenoidLength,
		ChargeMultiple: p.ChargeMultiple,
		Energy:         p.Energy,
	}

	rel, err := physics.RelativisticParams(p.Energy)
	if err != nil {
		return nil, err
	}

	w, err := physics.FocusingParameters(p.FieldValues, optic)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Rel: rel, W: w}

	for i, name := range p.DataFiles {
		path := filepath.Join(p.DataDir, name)

		t, err := table.ReadCSV(path)
		if os.IsNotExist(err) {
			obs.FileMissing(name)
			continue
		}
		if err != nil {
			return nil, err
		}

		spread, err := table.Reduce(t, p.Mode)
		if errors.Is(err, table.ErrColumnCount) && p.SkipColumnMismatch {
			obs.TableSkipped(name, err)
			continue
		}
		if err != nil {
			return nil, err
		}

		obs.TableReduced(name, p.FieldValues[i], spread)
		out.Fields = append(out.Fields, p.FieldValues[i])
		out.FitW = append(out.FitW, w[i])
		out.SpreadX = append(out.SpreadX, spread.X)
		out.SpreadY = append(out.SpreadY, spread.Y)
	}

	out.X = solveAxis("x", out.FitW, out.SpreadX, p.DriftLength, rel, obs)
	out.Y = solveAxis("y", out.FitW, out.SpreadY, p.DriftLength, rel, obs)
	return out, nil
}

// solveAxis fits one axis; a failed fit leaves the axis absent rather
// than failing the run.
func solveAxis(axis string, w, spread []float64, d float64, rel physics.Relativistic, obs Observer) *fit.Result {
	res, err := fit.Solve(axis, w, spread, d, rel)
	if err != nil {
		obs.AxisFailed(axis, err)
		return nil
	}
	obs.AxisSolved(res)
	return res
}

func validate(p Params) error {
	if len(p.DataFiles) == 0 {
		return fmt.Errorf("%w: no data files", ErrConfig)
	}
	if len(p.DataFiles) != len(p.FieldValues) {
		return fmt.Errorf("%w: %d data files but %d field values", ErrConfig, len(p.DataFiles), len(p.FieldValues))
	}
	if p.Mode != table.Modelling && p.Mode != table.Experiment {
		return fmt.Errorf("%w: %v", ErrConfig, table.ErrUnknownMode)
	}
	if p.DriftLength <= 0 {
		return fmt.Errorf("%w: drift length must be positive, got %g", ErrConfig, p.DriftLength)
	}
	if p.SolenoidLength <= 0 {
		return fmt.Errorf("%w: solenoid length must be positive, got %g", ErrConfig, p.SolenoidLength)
	}
	if p.Energy <= 0 {
		return fmt.Errorf("%w: energy must be positive, got %g", ErrConfig, p.Energy)
	}
	return nil
}
