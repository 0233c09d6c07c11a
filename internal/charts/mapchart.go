package charts

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"github.com/KaramelBytes/indiaviz-cli/internal/utils"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	minDot = 2.0
	// maxDot is a 35px marker diameter.
	maxDot = 17.5
)

// MapChart draws districts on longitude/latitude axes. Marker size follows
// the primary parameter and colour the secondary one (viridis).
func MapChart(path string, d *analysis.Dashboard) error {
	sel := d.Selection
	pts := MapPoints(d.View, sel.Primary, sel.Secondary)
	box, err := Viewport(pts, MapZoom(sel.Region))
	if err != nil {
		return err
	}

	series := []chart.Series{markerSeries(pts)}
	ch := chart.Chart{
		Title:      fmt.Sprintf("%s: size %s, colour %s", sel.Region, sel.Primary, sel.Secondary),
		Width:      1000,
		Height:     650,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Longitude", Range: &chart.ContinuousRange{Min: box.Min(0), Max: box.Max(0)}},
		YAxis:      chart.YAxis{Name: "Latitude", Range: &chart.ContinuousRange{Min: box.Min(1), Max: box.Max(1)}},
		Series:     series,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func markerSeries(pts []MapPoint) chart.ContinuousSeries {
	if len(pts) == 0 {
		// go-chart refuses to render without a visible series.
		return chart.ContinuousSeries{
			Name:    "empty",
			XValues: []float64{indiaLon},
			YValues: []float64{indiaLat},
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 1, DotColor: drawing.ColorTransparent},
		}
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	sizes := make([]float64, len(pts))
	colours := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.Lon, p.Lat
		sizes[i], colours[i] = p.Size, p.Colour
	}
	sLo, sHi := finiteRange(sizes)
	cLo, cHi := finiteRange(colours)

	return chart.ContinuousSeries{
		Name:    "districts",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    minDot,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				return scale(sizes[index], sLo, sHi, minDot, maxDot)
			},
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				v := colours[index]
				if math.IsNaN(v) {
					return chart.ColorAlternateGray
				}
				if cHi == cLo {
					return chart.Viridis(0.5, 0, 1)
				}
				return chart.Viridis(v, cLo, cHi)
			},
		},
	}
}

// scale maps v from [lo, hi] onto [outLo, outHi]; missing values get the
// smallest marker and a constant column the midpoint.
func scale(v, lo, hi, outLo, outHi float64) float64 {
	switch {
	case math.IsNaN(v):
		return outLo
	case hi == lo:
		return (outLo + outHi) / 2
	}
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

func finiteRange(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// RenderAll writes bar, scatter and map PNGs for d into dir and returns the
// paths written.
func RenderAll(dir string, d *analysis.Dashboard, slug string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	jobs := []struct {
		name string
		fn   func(string, *analysis.Dashboard) error
	}{
		{"bar", BarChart},
		{"scatter", ScatterChart},
		{"map", MapChart},
	}
	var written []string
	for _, j := range jobs {
		p := filepath.Join(dir, slug+"_"+j.name+".png")
		if err := j.fn(p, d); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}
