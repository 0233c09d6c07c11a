package analysis

import (
	"math"

	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
)

// View is a derived copy of dataset rows. Stages never modify a view in place.
type View struct {
	Region     string
	Columns    []string
	Rows       []dataset.Record
	Normalized []string
}

// Len returns the number of rows.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Rows)
}

// Column returns the values of col aligned with Rows; missing cells are NaN.
func (v *View) Column(col string) []float64 {
	out := make([]float64, v.Len())
	for i, r := range v.Rows {
		if x, ok := r.Value(col); ok {
			out[i] = x
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// present returns the non-missing values of col.
func (v *View) present(col string) []float64 {
	out := make([]float64, 0, v.Len())
	for _, r := range v.Rows {
		if x, ok := r.Value(col); ok {
			out = append(out, x)
		}
	}
	return out
}

func (v *View) clone() *View {
	out := &View{
		Region:     v.Region,
		Columns:    append([]string(nil), v.Columns...),
		Rows:       make([]dataset.Record, len(v.Rows)),
		Normalized: append([]string(nil), v.Normalized...),
	}
	for i, r := range v.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// FilterRegion returns all rows for Overall, otherwise the rows whose State
// equals region exactly. An unknown region yields an empty view.
func FilterRegion(ds *dataset.Dataset, region string) *View {
	if region == "" {
		region = Overall
	}
	v := &View{Region: region, Columns: append([]string(nil), ds.Columns...)}
	for _, r := range ds.Records {
		if region != Overall && r.State != region {
			continue
		}
		v.Rows = append(v.Rows, r.Clone())
	}
	return v
}

// Normalize min-max scales each named column into [0,1] over the rows of v.
// A constant column maps every present value to 0. Missing values stay missing.
func Normalize(v *View, cols ...string) *View {
	out := v.clone()
	done := map[string]bool{}
	for _, col := range cols {
		if done[col] {
			continue
		}
		done[col] = true
		vals := out.present(col)
		if len(vals) == 0 {
			continue
		}
		lo, hi := floats.Min(vals), floats.Max(vals)
		span := hi - lo
		for i := range out.Rows {
			x, ok := out.Rows[i].Value(col)
			if !ok {
				continue
			}
			if span == 0 {
				out.Rows[i].Values[col] = 0
			} else {
				out.Rows[i].Values[col] = (x - lo) / span
			}
		}
		out.Normalized = append(out.Normalized, col)
	}
	return out
}
