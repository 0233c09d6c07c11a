package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"github.com/olekukonko/tablewriter"
)

// WriteTables prints the dashboard as terminal tables.
func WriteTables(w io.Writer, d *analysis.Dashboard) error {
	if d == nil {
		_, err := io.WriteString(w, Welcome())
		return err
	}
	sel := d.Selection
	fmt.Fprintf(w, "Region: %s | Primary: %s | Secondary: %s | Rows: %d\n\n", sel.Region, sel.Primary, sel.Secondary, d.View.Len())

	kpi := newTable(w, []string{"Metric", "Value"})
	kpi.Append([]string{"Total population", total(d.KPIs.Population)})
	kpi.Append([]string{"Avg literacy rate", mean(d.KPIs.Literacy, "%.2f%%")})
	kpi.Append([]string{"Avg sex ratio", mean(d.KPIs.SexRatio, "%.0f")})
	kpi.Append([]string{"Districts", strconv.Itoa(d.KPIs.Districts)})
	kpi.Render()

	fmt.Fprintf(w, "\nTop districts by %s\n", sel.Primary)
	rankTable(w, d.Top)
	fmt.Fprintf(w, "\nBottom districts by %s\n", sel.Primary)
	rankTable(w, d.Bottom)

	fmt.Fprintln(w, "\nTop regions by population")
	rt := newTable(w, []string{"#", "Region", "Population", "Districts"})
	for i, r := range d.TopRegions {
		rt.Append([]string{strconv.Itoa(i + 1), r.Region, fmt.Sprintf("%.0f", r.Total), strconv.Itoa(r.Districts)})
	}
	rt.Render()

	o := d.Outliers
	fmt.Fprintf(w, "\nOutliers in %s (|z|>%.1f): %d\n", o.Column, o.Threshold, o.Count)
	if o.Count > 0 {
		ot := newTable(w, []string{"Side", "District", "State", "Value", "z"})
		for _, r := range o.High {
			ot.Append([]string{"high", r.District, r.State, fmt.Sprintf("%.4g", r.Value), fmt.Sprintf("%.2f", r.Z)})
		}
		for _, r := range o.Low {
			ot.Append([]string{"low", r.District, r.State, fmt.Sprintf("%.4g", r.Value), fmt.Sprintf("%.2f", r.Z)})
		}
		ot.Render()
	}

	c := d.Correlation
	fmt.Fprintf(w, "\nCorrelation %s ~ %s\n", c.X, c.Y)
	ct := newTable(w, []string{"n", "r", "p-value", "Strength"})
	if c.OK() {
		ct.Append([]string{strconv.Itoa(c.N), fmt.Sprintf("%.3f", c.R), fmt.Sprintf("%.4g", c.P), string(c.Strength)})
	} else {
		ct.Append([]string{strconv.Itoa(c.N), "-", "-", string(c.Status)})
	}
	ct.Render()

	for _, warn := range d.Warnings {
		fmt.Fprintf(w, "⚠ %s\n", warn)
	}
	return nil
}

func rankTable(w io.Writer, rows []analysis.Ranked) {
	t := newTable(w, []string{"#", "District", "State", "Value"})
	for _, r := range rows {
		t.Append([]string{strconv.Itoa(r.Position), r.District, r.State, fmt.Sprintf("%.4g", r.Value)})
	}
	t.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}
