package table_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/beamstats"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/table"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseMode(t *testing.T) {
	m, err := table.ParseMode("Experiment")
	require.NoError(t, err)
	assert.Equal(t, table.Experiment, m)

	m, err = table.ParseMode(" modelling ")
	require.NoError(t, err)
	assert.Equal(t, table.Modelling, m)

	_, err = table.ParseMode("simulation")
	assert.ErrorIs(t, err, table.ErrUnknownMode)
}

func TestReadCSV_BlankCellsBecomeNaN(t *testing.T) {
	path := writeCSV(t, "data.csv", "10,5,3\n20,,4\n30,2,\n")
	tab, err := table.ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 3, tab.Cols)
	require.Len(t, tab.Rows, 3)
	assert.True(t, math.IsNaN(tab.Rows[1][1]))
	assert.True(t, math.IsNaN(tab.Rows[2][2]))
	assert.Equal(t, 20.0, tab.Rows[1][0])
}

func TestReadCSV_RaggedRowsPadded(t *testing.T) {
	path := writeCSV(t, "ragged.csv", "1,2,3\n4,5\n")
	tab, err := table.ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Cols)
	assert.True(t, math.IsNaN(tab.Rows[1][2]))
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := table.ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, os.IsNotExist(err))
}

// TestReduce_Experiment checks row filtering, the mm→m conversion and
// the weighted reduction against a hand-computed value.
func TestReduce_Experiment(t *testing.T) {
	// Rows: distance mm, count x, count y.
	// x axis keeps rows (1000,1) and (3000,3): weighted std of {1,3} m
	// with weights {1,3} is √0.75.
	// Row with zero count and row with blank distance drop out.
	path := writeCSV(t, "exp.csv", "1000,1,2\n3000,3,2\n2000,0,2\n,5,2\n")
	tab, err := table.ReadCSV(path)
	require.NoError(t, err)

	spread, err := table.Reduce(tab, table.Experiment)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.75), spread.X, 1e-12)

	// y axis keeps the three rows with a distance: distances {1,3,2} m,
	// equal weights 2, so it matches the unweighted population std.
	assert.InDelta(t, beamstats.StdDev([]float64{1, 3, 2}), spread.Y, 1e-12)
}

func TestReduce_ExperimentNoValidRows(t *testing.T) {
	path := writeCSV(t, "empty.csv", "1000,0,0\n2000,0,0\n")
	tab, err := table.ReadCSV(path)
	require.NoError(t, err)

	spread, err := table.Reduce(tab, table.Experiment)
	require.NoError(t, err)
	assert.Equal(t, 0.0, spread.X)
	assert.Equal(t, 0.0, spread.Y)
}

func TestReduce_Modelling(t *testing.T) {
	// Coordinates in mm; both columns convert to meters.
	path := writeCSV(t, "model.csv", "1000,2000\n3000,4000\n")
	tab, err := table.ReadCSV(path)
	require.NoError(t, err)

	spread, err := table.Reduce(tab, table.Modelling)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, spread.X, 1e-12) // std of {1, 3} m
	assert.InDelta(t, 1.0, spread.Y, 1e-12) // std of {2, 4} m
}

func TestReduce_ColumnMismatch(t *testing.T) {
	twoCol := writeCSV(t, "two.csv", "1,2\n3,4\n")
	tab, err := table.ReadCSV(twoCol)
	require.NoError(t, err)

	_, err = table.Reduce(tab, table.Experiment)
	assert.ErrorIs(t, err, table.ErrColumnCount)

	threeCol := writeCSV(t, "three.csv", "1,2,3\n")
	tab, err = table.ReadCSV(threeCol)
	require.NoError(t, err)

	_, err = table.Reduce(tab, table.Modelling)
	assert.ErrorIs(t, err, table.ErrColumnCount)
}
