package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
)

const noData = "no data"

// Welcome is shown while a session is idle.
func Welcome() string {
	var b strings.Builder
	b.WriteString("[WELCOME]\n")
	b.WriteString("India district dashboard: population, literacy and sex ratio by district.\n\n")
	b.WriteString("[GETTING STARTED]\n")
	b.WriteString("1. List regions:     indiaviz regions\n")
	b.WriteString("2. List parameters:  indiaviz params\n")
	b.WriteString("3. Build dashboard:  indiaviz build --region Overall --primary Population --secondary literacy_rate\n")
	b.WriteString("   Add --normalize to scale both parameters to [0,1], --charts for PNG charts,\n")
	b.WriteString("   --export-csv / --export-xlsx to save the filtered data.\n")
	return b.String()
}

// Markdown renders a dashboard as a sectioned text report.
func Markdown(d *analysis.Dashboard) string {
	if d == nil {
		return Welcome()
	}
	var b strings.Builder
	sel := d.Selection
	b.WriteString("[DASHBOARD]\n")
	if d.Dataset != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", d.Dataset))
	}
	b.WriteString(fmt.Sprintf("Build: %s\n", d.ID))
	b.WriteString(fmt.Sprintf("Region: %s\n", sel.Region))
	b.WriteString(fmt.Sprintf("Primary: %s\n", sel.Primary))
	b.WriteString(fmt.Sprintf("Secondary: %s\n", sel.Secondary))
	if sel.Normalize {
		b.WriteString("Normalized: yes (min-max over this view)\n")
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n\n", d.View.Len()))

	b.WriteString("[KEY METRICS]\n")
	b.WriteString(fmt.Sprintf("- Total population: %s\n", total(d.KPIs.Population)))
	b.WriteString(fmt.Sprintf("- Avg literacy rate: %s\n", mean(d.KPIs.Literacy, "%.2f%%")))
	b.WriteString(fmt.Sprintf("- Avg sex ratio: %s\n", mean(d.KPIs.SexRatio, "%.0f")))
	b.WriteString(fmt.Sprintf("- Districts: %d\n", d.KPIs.Districts))

	b.WriteString("\n[PARAMETERS]\n")
	for _, s := range []analysis.NumSummary{d.Primary, d.Secondary} {
		if !s.OK() {
			b.WriteString(fmt.Sprintf("- %s: %s\n", s.Column, noData))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: total %.4g, mean %.4g (min %.4g, max %.4g, n=%d)\n",
			s.Column, s.Sum, s.Mean, s.Min, s.Max, s.Count))
	}

	writeRanking(&b, fmt.Sprintf("TOP %d DISTRICTS BY %s", len(d.Top), strings.ToUpper(sel.Primary)), d.Top)
	writeRanking(&b, fmt.Sprintf("BOTTOM %d DISTRICTS BY %s", len(d.Bottom), strings.ToUpper(sel.Primary)), d.Bottom)

	b.WriteString("\n[TOP REGIONS BY POPULATION]\n")
	if len(d.TopRegions) == 0 {
		b.WriteString(noData + "\n")
	}
	for i, r := range d.TopRegions {
		b.WriteString(fmt.Sprintf("%d. %s: %.0f (%d districts)\n", i+1, safeVal(r.Region), r.Total, r.Districts))
	}

	o := d.Outliers
	b.WriteString(fmt.Sprintf("\n[OUTLIERS: %s]\n", o.Column))
	switch {
	case o.Degenerate:
		b.WriteString("No outliers (zero variance or too few values)\n")
	case o.Count == 0:
		b.WriteString(fmt.Sprintf("No outliers above |z|>%.1f\n", o.Threshold))
	default:
		b.WriteString(fmt.Sprintf("%d rows above |z|>%.1f (mean %.4g, std %.4g)\n", o.Count, o.Threshold, o.Mean, o.StdDev))
		writeOutliers(&b, "High", o.High)
		writeOutliers(&b, "Low", o.Low)
	}

	c := d.Correlation
	b.WriteString(fmt.Sprintf("\n[CORRELATION: %s ~ %s]\n", c.X, c.Y))
	if c.OK() {
		b.WriteString(fmt.Sprintf("r=%.3f, p=%.4g, n=%d: %s\n", c.R, c.P, c.N, c.Strength))
		b.WriteString(fmt.Sprintf("trend: %s = %.4g + %.4g × %s\n", c.Y, c.Intercept, c.Slope, c.X))
	} else {
		b.WriteString(fmt.Sprintf("%s (n=%d)\n", c.Status, c.N))
	}

	if len(d.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range d.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeRanking(b *strings.Builder, title string, rows []analysis.Ranked) {
	b.WriteString("\n[" + title + "]\n")
	if len(rows) == 0 {
		b.WriteString(noData + "\n")
		return
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%d. %s (%s): %.4g\n", r.Position, safeVal(r.District), safeVal(r.State), r.Value))
	}
}

func writeOutliers(b *strings.Builder, label string, rows []analysis.OutlierRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(label + ":\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  • %s (%s): %.4g, z=%.2f\n", safeVal(r.District), safeVal(r.State), r.Value, r.Z))
	}
}

func total(s analysis.NumSummary) string {
	if !s.OK() {
		return noData
	}
	return fmt.Sprintf("%.0f", s.Sum)
}

func mean(s analysis.NumSummary, format string) string {
	if !s.OK() {
		return noData
	}
	return fmt.Sprintf(format, s.Mean)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
