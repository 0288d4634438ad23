// Package table loads quadrant-scan measurement tables and reduces each
// one to a spread value per transverse axis.
//
// A table is row-indexed: column 0 is a distance in millimeters, the
// remaining columns are per-row measurement counts. Absent cells are
// represented as NaN, mirroring the blank cells of the source sheets.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Mode selects how a table's columns are interpreted.
type Mode string

const (
	// Modelling tables have exactly two coordinate columns (x, y) in
	// millimeters and implicit unit weights.
	Modelling Mode = "modelling"

	// Experiment tables have a distance column followed by one count
	// column per transverse axis.
	Experiment Mode = "experiment"
)

// ErrUnknownMode reports an unrecognized mode token in configuration.
var ErrUnknownMode = errors.New("table: unknown mode")

// ParseMode converts a configuration token into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Modelling:
		return Modelling, nil
	case Experiment:
		return Experiment, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownMode, s, Modelling, Experiment)
}

// Table is one measurement file in memory. Rows are normalized to Cols
// cells each; absent cells hold NaN.
type Table struct {
	Name string
	Cols int
	Rows [][]float64
}

// ReadCSV parses a headerless CSV measurement table. Blank cells and
// cells that do not parse as numbers become NaN; ragged rows are padded
// to the widest row seen.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("table: read %s: %w", path, err)
	}
	t.Name = path
	return t, nil
}

func parseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	t := &Table{}
	for _, record := range records {
		if len(record) > t.Cols {
			t.Cols = len(record)
		}
		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				v = math.NaN()
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}

	// Pad ragged rows so every row has Cols cells.
	for i, row := range t.Rows {
		for len(row) < t.Cols {
			row = append(row, math.NaN())
		}
		t.Rows[i] = row
	}
	return t, nil
}
