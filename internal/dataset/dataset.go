package dataset

import (
	"math"
	"sort"
	"strconv"
)

// Column names the dashboard pipeline depends on.
const (
	ColDistrict   = "District"
	ColState      = "State"
	ColPopulation = "Population"
	ColLiteracy   = "literacy_rate"
	ColSexRatio   = "sex_ratio"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"

	ColFemaleLiterate      = "Female_Literate"
	ColMaleLiterate        = "Male_Literate"
	ColGenderLiteracyRatio = "Gender_Literacy_Ratio"
)

// RequiredColumns must be present in every input file.
var RequiredColumns = []string{
	ColDistrict, ColState, ColPopulation, ColLiteracy, ColSexRatio, ColLatitude, ColLongitude,
}

var requiredNumeric = []string{ColPopulation, ColLiteracy, ColSexRatio, ColLatitude, ColLongitude}

// Record is one district row. Missing numeric cells are stored as NaN.
type Record struct {
	District string
	State    string
	Values   map[string]float64
	Text     map[string]string
}

// Value returns the numeric value of col and whether it is present.
func (r Record) Value(col string) (float64, bool) {
	v, ok := r.Values[col]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Cell renders col as it should appear in a delimited export.
func (r Record) Cell(col string) string {
	if v, ok := r.Values[col]; ok {
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	switch col {
	case ColDistrict:
		return r.District
	case ColState:
		return r.State
	}
	return r.Text[col]
}

// Clone returns a deep copy so derived views never share maps with the dataset.
func (r Record) Clone() Record {
	out := Record{
		District: r.District,
		State:    r.State,
		Values:   make(map[string]float64, len(r.Values)),
		Text:     make(map[string]string, len(r.Text)),
	}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	for k, v := range r.Text {
		out.Text[k] = v
	}
	return out
}

// Dataset is the immutable in-memory table loaded once per session.
type Dataset struct {
	Name    string
	Columns []string
	Records []Record

	numeric map[string]bool
}

// New assembles a Dataset from already parsed records. numeric lists the
// columns whose values live in Record.Values.
func New(name string, columns, numeric []string, records []Record) *Dataset {
	d := &Dataset{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Records: records,
		numeric: make(map[string]bool, len(numeric)),
	}
	for _, c := range numeric {
		d.numeric[c] = true
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// IsNumeric reports whether col is a numeric column.
func (d *Dataset) IsNumeric(col string) bool { return d.numeric[col] }

// HasColumn reports whether col exists in the dataset.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// NumericColumns returns the numeric column names sorted alphabetically,
// the order used for parameter selectors.
func (d *Dataset) NumericColumns() []string {
	out := make([]string, 0, len(d.numeric))
	for c := range d.numeric {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Regions returns the distinct region values in first-seen order.
func (d *Dataset) Regions() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range d.Records {
		if _, ok := seen[r.State]; ok {
			continue
		}
		seen[r.State] = struct{}{}
		out = append(out, r.State)
	}
	return out
}

// genderLiteracyRatio mirrors the load-time derivation; the +1 guards a zero denominator.
func genderLiteracyRatio(female, male float64) float64 {
	if math.IsNaN(female) || math.IsNaN(male) {
		return math.NaN()
	}
	return female / (male + 1) * 100
}
