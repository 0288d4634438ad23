package pipeline

import (
	"github.com/GeorgiiSizykh/emittance-calculator/internal/fit"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/table"
)

// Observer receives structured progress events from a run. The core
// never prints; the CLI installs a console observer and tests install a
// recording one.
type Observer interface {
	// FileMissing reports a data file absent from disk; the run
	// continues without it.
	FileMissing(name string)

	// TableSkipped reports a file dropped for a column-count mismatch
	// when SkipColumnMismatch is set.
	TableSkipped(name string, err error)

	// TableReduced reports one table collapsed to its per-axis spreads.
	TableReduced(name string, field float64, spread table.Spread)

	// AxisSolved reports a completed per-axis emittance solution.
	AxisSolved(res *fit.Result)

	// AxisFailed reports a fit failure or degeneracy for one axis; the
	// other axis still runs.
	AxisFailed(axis string, err error)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) FileMissing(string)                        {}
func (NopObserver) TableSkipped(string, error)                {}
func (NopObserver) TableReduced(string, float64, table.Spread) {}
func (NopObserver) AxisSolved(*fit.Result)                    {}
func (NopObserver) AxisFailed(string, error)                  {}
