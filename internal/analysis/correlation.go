package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Strength classifies a correlation coefficient.
type Strength string

const (
	StrongPositive   Strength = "strong positive"
	ModeratePositive Strength = "moderate positive"
	StrongNegative   Strength = "strong negative"
	ModerateNegative Strength = "moderate negative"
	WeakNone         Strength = "weak/none"
)

// CorrStatus tells whether a coefficient could be computed.
type CorrStatus string

const (
	CorrOK           CorrStatus = "ok"
	CorrInsufficient CorrStatus = "insufficient data"
	// CorrUndefined marks a constant column, where r is 0/0.
	CorrUndefined CorrStatus = "undefined (constant column)"
)

// Correlation is the Pearson result between two columns of a view.
type Correlation struct {
	X        string     `json:"x"`
	Y        string     `json:"y"`
	N        int        `json:"n"`
	Status   CorrStatus `json:"status"`
	R        float64    `json:"r"`
	P        float64    `json:"p"`
	Strength Strength   `json:"strength,omitempty"`
	// Trend line y = Intercept + Slope*x from least squares.
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// OK reports whether R and P are meaningful.
func (c Correlation) OK() bool { return c.Status == CorrOK }

// Classify maps r to a strength label; the first matching rule wins.
func Classify(r float64) Strength {
	switch {
	case r > 0.7:
		return StrongPositive
	case r > 0.3:
		return ModeratePositive
	case r < -0.7:
		return StrongNegative
	case r < -0.3:
		return ModerateNegative
	default:
		return WeakNone
	}
}

// Correlate computes Pearson r and its two-sided p-value between x and y,
// dropping rows where either value is missing. Fewer than two pairs yields
// CorrInsufficient.
func Correlate(v *View, x, y string) Correlation {
	c := Correlation{X: x, Y: y}
	var xs, ys []float64
	if v != nil {
		for _, r := range v.Rows {
			a, okA := r.Value(x)
			b, okB := r.Value(y)
			if !okA || !okB {
				continue
			}
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	c.N = len(xs)
	if c.N < 2 {
		c.Status = CorrInsufficient
		return c
	}
	if isConstant(xs) || isConstant(ys) {
		c.Status = CorrUndefined
		return c
	}
	r := stat.Correlation(xs, ys, nil)
	r = math.Max(-1, math.Min(1, r))
	c.Status = CorrOK
	c.R = r
	c.P = pValue(r, c.N)
	c.Strength = Classify(r)
	c.Intercept, c.Slope = stat.LinearRegression(xs, ys, nil, false)
	return c
}

func isConstant(vals []float64) bool {
	return len(vals) > 0 && floats.Min(vals) == floats.Max(vals)
}

// pValue is the two-sided significance of r under Student's t with n-2 dof.
func pValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}
