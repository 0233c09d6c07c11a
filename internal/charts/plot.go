package charts

import (
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	barColor   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	pointColor = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	trendColor = color.RGBA{A: 255}
)

// BarChart plots the top-ranked districts of the primary parameter.
// An empty ranking still produces a labelled, empty chart.
func BarChart(path string, d *analysis.Dashboard) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top districts by %s (%s)", d.Selection.Primary, d.Selection.Region)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "District"
	p.Y.Label.Text = d.Selection.Primary

	if len(d.Top) > 0 {
		values := make(plotter.Values, len(d.Top))
		labels := make([]string, len(d.Top))
		for i, r := range d.Top {
			values[i] = r.Value
			labels[i] = r.District
		}
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.YAlign = draw.YCenter
		p.X.Tick.Label.XAlign = draw.XRight
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save bar chart: %w", err)
	}
	return nil
}

// ScatterChart plots primary against secondary with the least-squares trend
// line when a correlation could be computed.
func ScatterChart(path string, d *analysis.Dashboard) error {
	x, y := d.Selection.Primary, d.Selection.Secondary
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s (%s)", x, y, d.Selection.Region)
	if d.Correlation.OK() {
		p.Title.Text += fmt.Sprintf(", r=%.3f", d.Correlation.R)
	}
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y

	pts := pairs(d.View, x, y)
	if len(pts) > 0 {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter chart: %w", err)
		}
		scatter.GlyphStyle.Color = pointColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
	}
	p.Add(plotter.NewGrid())

	if c := d.Correlation; c.OK() {
		xmin, xmax := extent(pts)
		line := plotter.NewFunction(func(v float64) float64 { return c.Intercept + c.Slope*v })
		line.XMin, line.XMax = xmin, xmax
		line.Color = trendColor
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(line)
		p.Legend.Add("trend", line)
	}

	if err := p.Save(10*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save scatter chart: %w", err)
	}
	return nil
}

// pairs returns rows where both values are present.
func pairs(v *analysis.View, x, y string) plotter.XYs {
	xs, ys := v.Column(x), v.Column(y)
	out := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		out = append(out, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return out
}

func extent(pts plotter.XYs) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		lo = math.Min(lo, p.X)
		hi = math.Max(hi, p.X)
	}
	return lo, hi
}
