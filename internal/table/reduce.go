package table

import (
	"errors"
	"fmt"
	"math"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/beamstats"
)

// mmToM converts the raw millimeter distances of the source sheets to
// meters before any statistic is computed.
const mmToM = 0.001

// ErrColumnCount reports a table whose column count does not match its
// declared mode. This is a data-integrity fault, not a soft condition.
var ErrColumnCount = errors.New("table: column count does not match declared mode")

// Spread is the reduced spread statistic of one table, one value per
// transverse axis. Values are in meters and never negative.
type Spread struct {
	X float64
	Y float64
}

// Reduce collapses a table into one spread value per axis.
//
// Experiment mode: column 0 is distance (mm), columns 1 and 2 are the
// per-row counts for the x and y axes. For each axis, rows are kept only
// when the distance cell and that axis's count cell are both present and
// the count is non-zero; the kept (distance, count) pairs feed the
// weighted standard deviation.
//
// Modelling mode: two coordinate columns (mm), unit weights, plain
// population standard deviation per column.
func Reduce(t *Table, mode Mode) (Spread, error) {
	if err := checkColumns(t, mode); err != nil {
		return Spread{}, err
	}

	if mode == Modelling {
		var xs, ys []float64
		for _, row := range t.Rows {
			if !math.IsNaN(row[0]) {
				xs = append(xs, row[0]*mmToM)
			}
			if !math.IsNaN(row[1]) {
				ys = append(ys, row[1]*mmToM)
			}
		}
		return Spread{X: beamstats.StdDev(xs), Y: beamstats.StdDev(ys)}, nil
	}

	return Spread{
		X: weightedAxis(t, 1),
		Y: weightedAxis(t, 2),
	}, nil
}

// checkColumns validates a table's shape for its declared mode before
// any spread is computed.
func checkColumns(t *Table, mode Mode) error {
	switch mode {
	case Modelling:
		if t.Cols != 2 {
			return fmt.Errorf("%w: %s has %d columns, modelling needs exactly 2", ErrColumnCount, t.Name, t.Cols)
		}
	case Experiment:
		if t.Cols < 3 {
			return fmt.Errorf("%w: %s has %d columns, experiment needs at least 3", ErrColumnCount, t.Name, t.Cols)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return nil
}

func weightedAxis(t *Table, col int) float64 {
	var distances, weights []float64
	for _, row := range t.Rows {
		if math.IsNaN(row[0]) || math.IsNaN(row[col]) || row[col] == 0 {
			continue
		}
		distances = append(distances, row[0]*mmToM)
		weights = append(weights, row[col])
	}
	return beamstats.WeightedStdDev(distances, weights)
}
