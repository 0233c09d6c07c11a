package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Score is the per-row outlier annotation, aligned with View.Rows.
type Score struct {
	Z       float64 `json:"z"`
	Scored  bool    `json:"scored"`
	Outlier bool    `json:"outlier"`
}

// OutlierRow is a flagged row prepared for display.
type OutlierRow struct {
	District string  `json:"district"`
	State    string  `json:"state"`
	Value    float64 `json:"value"`
	Z        float64 `json:"z"`
}

// OutlierResult holds z-scores for one column of a view.
type OutlierResult struct {
	Column    string       `json:"column"`
	Threshold float64      `json:"threshold"`
	Mean      float64      `json:"mean"`
	StdDev    float64      `json:"std_dev"`
	Scores    []Score      `json:"scores"`
	Count     int          `json:"count"`
	High      []OutlierRow `json:"high"`
	Low       []OutlierRow `json:"low"`
	// Degenerate is set when the column has zero variance or fewer than two values.
	Degenerate bool `json:"degenerate"`
}

// DetectOutliers scores col with the population standard score and flags
// rows where |z| > threshold. High and low lists are sorted by |z| descending
// and each capped at limit. Missing values are neither scored nor flagged.
func DetectOutliers(v *View, col string, threshold float64, limit int) OutlierResult {
	res := OutlierResult{Column: col, Threshold: threshold, Scores: make([]Score, v.Len())}
	vals := v.present(col)
	n := len(vals)
	if n < 2 || isConstant(vals) {
		res.Degenerate = true
		return res
	}
	mean, variance := stat.MeanVariance(vals, nil)
	std := math.Sqrt(variance * float64(n-1) / float64(n))
	res.Mean, res.StdDev = mean, std

	for i, r := range v.Rows {
		x, ok := r.Value(col)
		if !ok {
			continue
		}
		z := (x - mean) / std
		sc := Score{Z: z, Scored: true, Outlier: math.Abs(z) > threshold}
		res.Scores[i] = sc
		if !sc.Outlier {
			continue
		}
		res.Count++
		row := OutlierRow{District: r.District, State: r.State, Value: x, Z: z}
		if z > 0 {
			res.High = append(res.High, row)
		} else {
			res.Low = append(res.Low, row)
		}
	}
	sort.SliceStable(res.High, func(i, j int) bool { return res.High[i].Z > res.High[j].Z })
	sort.SliceStable(res.Low, func(i, j int) bool { return res.Low[i].Z < res.Low[j].Z })
	if limit > 0 {
		if len(res.High) > limit {
			res.High = res.High[:limit]
		}
		if len(res.Low) > limit {
			res.Low = res.Low[:limit]
		}
	}
	return res
}
