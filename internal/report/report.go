// Package report turns run outcomes into human-readable console
// summaries and machine-readable CSV rows.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/fit"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/pipeline"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/table"
)

// ConsoleObserver prints run progress to an io.Writer. With Verbose off
// only skips and failures are narrated.
type ConsoleObserver struct {
	W       io.Writer
	Verbose bool
}

func (c *ConsoleObserver) FileMissing(name string) {
	fmt.Fprintf(c.W, "file %s not found, skipping\n", name)
}

func (c *ConsoleObserver) TableSkipped(name string, err error) {
	fmt.Fprintf(c.W, "file %s skipped: %v\n", name, err)
}

func (c *ConsoleObserver) TableReduced(name string, field float64, spread table.Spread) {
	if c.Verbose {
		fmt.Fprintf(c.W, "%s (B = %g): spread x = %.6e m, y = %.6e m\n", name, field, spread.X, spread.Y)
	}
}

func (c *ConsoleObserver) AxisSolved(res *fit.Result) {
	if c.Verbose {
		fmt.Fprintf(c.W, "axis %s fit: R² = %.6f\n", res.Axis, res.RSquared)
	}
}

func (c *ConsoleObserver) AxisFailed(axis string, err error) {
	fmt.Fprintf(c.W, "axis %s failed: %v\n", axis, err)
}

// PrintSummary writes the run narration: physics parameters, the w
// table, and the per-axis emittance block.
func PrintSummary(w io.Writer, p pipeline.Params, out *pipeline.Outcome) {
	fmt.Fprintln(w, "PHYSICS PARAMETERS")
	fmt.Fprintf(w, "  drift length d        = %.6e m\n", p.DriftLength)
	fmt.Fprintf(w, "  solenoid length l     = %.6e m\n", p.SolenoidLength)
	fmt.Fprintf(w, "  beam energy ε         = %.6e J\n", p.Energy)
	fmt.Fprintf(w, "  charge multiple Z     = %g\n", p.ChargeMultiple)
	fmt.Fprintf(w, "  gamma                 = %.6f\n", out.Rel.Gamma)
	fmt.Fprintf(w, "  beta                  = %.6f\n", out.Rel.Beta)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FIELD AND FOCUSING PARAMETER")
	for i, b := range p.FieldValues {
		fmt.Fprintf(w, "  B = %-8g w = %.6f\n", b, out.W[i])
	}
	fmt.Fprintln(w)

	printAxis(w, out.X, "x")
	printAxis(w, out.Y, "y")

	if out.X != nil && out.Y != nil {
		total := fit.TotalEmittance(out.X.Emittance, out.Y.Emittance)
		fmt.Fprintf(w, "TOTAL EMITTANCE (geometric mean) = %.6e m·rad\n", total)
	}
}

func printAxis(w io.Writer, res *fit.Result, axis string) {
	if res == nil {
		fmt.Fprintf(w, "AXIS %s: no result\n\n", axis)
		return
	}
	fmt.Fprintf(w, "AXIS %s\n", res.Axis)
	fmt.Fprintf(w, "  fit: spread = %.6e·w² + %.6e·w + %.6e\n", res.Coeffs.A, res.Coeffs.B, res.Coeffs.C)
	fmt.Fprintf(w, "  R²          = %.6f\n", res.RSquared)
	fmt.Fprintf(w, "  sigma0      = %.6e\n", res.Sigma0)
	fmt.Fprintf(w, "  sigma1      = %.6e\n", res.Sigma1)
	fmt.Fprintf(w, "  sigma2      = %.6e\n", res.Sigma2)
	if res.NegativeRadicand {
		fmt.Fprintf(w, "  emittance   = undefined (negative radicand sigma0·sigma2 - sigma1²)\n")
	} else {
		fmt.Fprintf(w, "  emittance   = %.6e m·rad\n", res.Emittance)
		fmt.Fprintf(w, "  normalized  = %.6e m·rad\n", res.NormEmittance)
	}
	fmt.Fprintln(w)
}

// WriteCSV writes one axis-keyed summary row per solved axis.
func WriteCSV(w io.Writer, results ...*fit.Result) error {
	cw := csv.NewWriter(w)
	header := []string{"axis", "a", "b", "c", "sigma0", "sigma1", "sigma2", "emittance", "norm_emittance", "r_squared"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		row := []string{
			res.Axis,
			num(res.Coeffs.A), num(res.Coeffs.B), num(res.Coeffs.C),
			num(res.Sigma0), num(res.Sigma1), num(res.Sigma2),
			num(res.Emittance), num(res.NormEmittance), num(res.RSquared),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'e', 9, 64)
}
