package analysis

import (
	"sort"

	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NumSummary aggregates one numeric column. Count == 0 means "no data" and
// the remaining fields are zero and meaningless.
type NumSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// OK reports whether the summary is backed by at least one value.
func (s NumSummary) OK() bool { return s.Count > 0 }

// Summarize computes total/mean/min/max of col over the present values of v.
func Summarize(v *View, col string) NumSummary {
	s := NumSummary{Column: col}
	if v == nil {
		return s
	}
	vals := v.present(col)
	if len(vals) == 0 {
		return s
	}
	s.Count = len(vals)
	s.Sum = floats.Sum(vals)
	s.Mean = stat.Mean(vals, nil)
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	return s
}

// KPIs are the headline metrics of a view.
type KPIs struct {
	Population NumSummary `json:"population"`
	Literacy   NumSummary `json:"literacy"`
	SexRatio   NumSummary `json:"sex_ratio"`
	Districts  int        `json:"districts"`
}

// ComputeKPIs returns total population, average literacy, average sex ratio
// and the number of distinct districts.
func ComputeKPIs(v *View) KPIs {
	k := KPIs{
		Population: Summarize(v, dataset.ColPopulation),
		Literacy:   Summarize(v, dataset.ColLiteracy),
		SexRatio:   Summarize(v, dataset.ColSexRatio),
	}
	if v == nil {
		return k
	}
	seen := map[string]struct{}{}
	for _, r := range v.Rows {
		if r.District == "" {
			continue
		}
		seen[r.District] = struct{}{}
	}
	k.Districts = len(seen)
	return k
}

// Ranked is one entry of a district ranking.
type Ranked struct {
	Position int     `json:"position"`
	District string  `json:"district"`
	State    string  `json:"state"`
	Value    float64 `json:"value"`
}

// TopN returns up to n districts with the highest col. Ties keep row order.
func TopN(v *View, col string, n int) []Ranked {
	return rank(v, col, n, true)
}

// BottomN returns up to n districts with the lowest col. Ties keep row order.
func BottomN(v *View, col string, n int) []Ranked {
	return rank(v, col, n, false)
}

func rank(v *View, col string, n int, desc bool) []Ranked {
	if v == nil || n <= 0 {
		return nil
	}
	out := make([]Ranked, 0, v.Len())
	for _, r := range v.Rows {
		x, ok := r.Value(col)
		if !ok {
			continue
		}
		out = append(out, Ranked{District: r.District, State: r.State, Value: x})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Value > out[j].Value
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// RegionTotal is the summed population of one region.
type RegionTotal struct {
	Region    string  `json:"region"`
	Total     float64 `json:"total"`
	Districts int     `json:"districts"`
}

// TopRegionsByPopulation groups v by State, sums Population and returns the n
// largest totals. Ties keep first-appearance order.
func TopRegionsByPopulation(v *View, n int) []RegionTotal {
	if v == nil {
		return nil
	}
	idx := map[string]int{}
	var totals []RegionTotal
	for _, r := range v.Rows {
		i, ok := idx[r.State]
		if !ok {
			i = len(totals)
			idx[r.State] = i
			totals = append(totals, RegionTotal{Region: r.State})
		}
		totals[i].Districts++
		if x, ok := r.Value(dataset.ColPopulation); ok {
			totals[i].Total += x
		}
	}
	return rankRegions(totals, n)
}

func rankRegions(totals []RegionTotal, n int) []RegionTotal {
	out := append([]RegionTotal(nil), totals...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
