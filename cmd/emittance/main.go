// Command emittance computes the transverse emittance of an electron
// beam from quadrant-scan measurement tables taken at varying solenoid
// field strengths.
//
// Usage:
//
//	emittance -config run.json [-mode experiment|modelling] [-data DIR]
//	          [-out DIR] [-v] [-gnuplot] [-no-plots]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GeorgiiSizykh/emittance-calculator/internal/fit"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/pipeline"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/render"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/report"
	"github.com/GeorgiiSizykh/emittance-calculator/internal/table"
)

// config is the JSON run description.
type config struct {
	DriftLengthM       float64   `json:"drift_length_m"`
	SolenoidLengthM    float64   `json:"solenoid_length_m"`
	ChargeMultiple     float64   `json:"charge_multiple"`
	EnergyJ            float64   `json:"energy_j"`
	Mode               string    `json:"mode"`
	DataDir            string    `json:"data_dir"`
	DataFiles          []string  `json:"data_files"`
	FieldValues        []float64 `json:"field_values"`
	SkipColumnMismatch bool      `json:"skip_column_mismatch"`
}

func main() {
	var (
		configPath = flag.String("config", "run.json", "path to run configuration JSON")
		modeFlag   = flag.String("mode", "", "override mode: experiment or modelling")
		dataDir    = flag.String("data", "", "override data directory")
		outDir     = flag.String("out", "results", "output directory for CSV and plots")
		verbose    = flag.Bool("v", false, "narrate per-file processing")
		gnuplot    = flag.Bool("gnuplot", false, "also open interactive gnuplot windows")
		noPlots    = flag.Bool("no-plots", false, "skip PNG plot export")
	)
	flag.Parse()

	if err := run(*configPath, *modeFlag, *dataDir, *outDir, *verbose, *gnuplot, *noPlots); err != nil {
		fmt.Fprintln(os.Stderr, "emittance:", err)
		os.Exit(1)
	}
}

func run(configPath, modeFlag, dataDir, outDir string, verbose, gnuplot, noPlots bool) error {
	params, err := loadConfig(configPath, modeFlag, dataDir)
	if err != nil {
		return err
	}

	obs := &report.ConsoleObserver{W: os.Stdout, Verbose: verbose}
	out, err := pipeline.Run(params, obs)
	if err != nil {
		return err
	}

	report.PrintSummary(os.Stdout, params, out)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	csvPath := filepath.Join(outDir, "emittance.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, out.X, out.Y); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Println("results written to", csvPath)

	if !noPlots {
		if err := exportPlots(outDir, out); err != nil {
			return err
		}
	}
	if gnuplot {
		if err := showGnuplot(out); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(path, modeFlag, dataDir string) (pipeline.Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Params{}, fmt.Errorf("read config: %w", err)
	}
	var cfg config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return pipeline.Params{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if modeFlag != "" {
		cfg.Mode = modeFlag
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	mode, err := table.ParseMode(cfg.Mode)
	if err != nil {
		return pipeline.Params{}, err
	}

	return pipeline.Params{
		DriftLength:        cfg.DriftLengthM,
		SolenoidLength:     cfg.SolenoidLengthM,
		ChargeMultiple:     cfg.ChargeMultiple,
		Energy:             cfg.EnergyJ,
		Mode:               mode,
		DataDir:            cfg.DataDir,
		DataFiles:          cfg.DataFiles,
		FieldValues:        cfg.FieldValues,
		SkipColumnMismatch: cfg.SkipColumnMismatch,
	}, nil
}

func exportPlots(outDir string, out *pipeline.Outcome) error {
	plotDir := filepath.Join(outDir, "plots")

	// Raw spread vs field, both axes.
	if err := render.Scatter(filepath.Join(plotDir, "spread_x_vs_field.png"),
		"Spread vs field (x)", "B (T)", "spread (m)", out.Fields, out.SpreadX); err != nil {
		return err
	}
	if err := render.Scatter(filepath.Join(plotDir, "spread_y_vs_field.png"),
		"Spread vs field (y)", "B (T)", "spread (m)", out.Fields, out.SpreadY); err != nil {
		return err
	}

	for _, res := range []*fit.Result{out.X, out.Y} {
		if res == nil {
			continue
		}
		name := fmt.Sprintf("fit_%s.png", res.Axis)
		title := fmt.Sprintf("Parabolic fit, axis %s", res.Axis)
		spread := out.SpreadX
		if res.Axis == "y" {
			spread = out.SpreadY
		}
		if err := render.ScatterWithFit(filepath.Join(plotDir, name),
			title, "w", "spread (m)", out.FitW, spread, res.Coeffs.At); err != nil {
			return err
		}
	}
	fmt.Println("plots written to", plotDir)
	return nil
}

func showGnuplot(out *pipeline.Outcome) error {
	for _, res := range []*fit.Result{out.X, out.Y} {
		if res == nil {
			continue
		}
		spread := out.SpreadX
		if res.Axis == "y" {
			spread = out.SpreadY
		}
		title := fmt.Sprintf("Parabolic fit, axis %s", res.Axis)
		if err := render.GnuplotView(title, "w", "spread (m)", out.FitW, spread, res.Coeffs.At); err != nil {
			return err
		}
	}
	return nil
}
