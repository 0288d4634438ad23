// Package render exports the analysis plots: spread-vs-field scatter
// and spread-vs-w scatter with the fitted parabola overlaid.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Arafatk/glot"
)

// fitSamples is the number of points used to draw a fitted curve.
const fitSamples = 200

var (
	pointColor = color.RGBA{R: 99, G: 124, B: 198, A: 255}
	curveColor = color.RGBA{R: 201, G: 104, B: 146, A: 255}
)

func buildXYs(x, y []float64) plotter.XYs {
	xy := make(plotter.XYs, len(x))
	for i := range xy {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}
	return xy
}

func prepPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = font.Length(10)
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	p.Legend.Padding = vg.Points(5)
	return p
}

// Scatter saves a plain scatter plot of (x, y) as a PNG.
func Scatter(path, title, xlabel, ylabel string, x, y []float64) error {
	p := prepPlot(title, xlabel, ylabel)

	pts, err := plotter.NewScatter(buildXYs(x, y))
	if err != nil {
		return err
	}
	pts.GlyphStyle.Color = pointColor
	pts.GlyphStyle.Radius = vg.Points(3)
	pts.Shape = draw.CircleGlyph{}
	p.Add(pts, plotter.NewGrid())

	return save(p, path)
}

// ScatterWithFit saves the (x, y) points together with curve sampled
// across the x range. curve is typically the fitted parabola's At.
func ScatterWithFit(path, title, xlabel, ylabel string, x, y []float64, curve func(float64) float64) error {
	p := prepPlot(title, xlabel, ylabel)

	pts, err := plotter.NewScatter(buildXYs(x, y))
	if err != nil {
		return err
	}
	pts.GlyphStyle.Color = pointColor
	pts.GlyphStyle.Radius = vg.Points(3)
	pts.Shape = draw.CircleGlyph{}

	cx := make([]float64, fitSamples)
	floats.Span(cx, floats.Min(x), floats.Max(x))
	cy := make([]float64, fitSamples)
	for i, v := range cx {
		cy[i] = curve(v)
	}

	line, err := plotter.NewLine(buildXYs(cx, cy))
	if err != nil {
		return err
	}
	line.LineStyle.Color = curveColor
	line.LineStyle.Width = vg.Points(2)

	p.Add(pts, line, plotter.NewGrid())
	p.Legend.Add("measured", pts)
	p.Legend.Add("fit", line)

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// GnuplotView opens an interactive gnuplot window with the points and
// the fitted curve. Requires gnuplot on PATH.
func GnuplotView(title, xlabel, ylabel string, x, y []float64, curve func(float64) float64) error {
	gp, err := glot.NewPlot(2, true, false)
	if err != nil {
		return err
	}

	gp.SetTitle(title)
	gp.SetXLabel(xlabel)
	gp.SetYLabel(ylabel)

	if err := gp.AddPointGroup("measured", "points", [][]float64{x, y}); err != nil {
		return err
	}

	if curve != nil {
		cx := make([]float64, fitSamples)
		floats.Span(cx, floats.Min(x), floats.Max(x))
		cy := make([]float64, fitSamples)
		for i, v := range cx {
			cy[i] = curve(v)
		}
		if err := gp.AddPointGroup("fit", "lines", [][]float64{cx, cy}); err != nil {
			return err
		}
	}
	return nil
}
