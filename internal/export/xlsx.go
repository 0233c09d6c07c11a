package export

import (
	"fmt"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"github.com/xuri/excelize/v2"
)

const (
	dataSheet    = "Data"
	summarySheet = "Summary"
)

// WriteXLSX saves the dashboard view and its headline figures as a workbook.
func WriteXLSX(path string, d *analysis.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, col := range d.View.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(dataSheet, cell, col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for ri, r := range d.View.Rows {
		for ci, col := range d.View.Columns {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			var val interface{} = r.Cell(col)
			if x, ok := r.Value(col); ok {
				val = x
			}
			if err := f.SetCellValue(dataSheet, cell, val); err != nil {
				return fmt.Errorf("write row %d: %w", ri+1, err)
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	rows := summaryRows(d)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func summaryRows(d *analysis.Dashboard) [][]interface{} {
	metric := func(s analysis.NumSummary, pick func(analysis.NumSummary) float64) interface{} {
		if !s.OK() {
			return "no data"
		}
		return pick(s)
	}
	sum := func(s analysis.NumSummary) float64 { return s.Sum }
	mean := func(s analysis.NumSummary) float64 { return s.Mean }

	sel := d.Selection
	rows := [][]interface{}{
		{"Build", d.ID},
		{"Region", sel.Region},
		{"Primary parameter", sel.Primary},
		{"Secondary parameter", sel.Secondary},
		{"Normalized", sel.Normalize},
		{"Rows", d.View.Len()},
		{"Total population", metric(d.KPIs.Population, sum)},
		{"Avg literacy rate", metric(d.KPIs.Literacy, mean)},
		{"Avg sex ratio", metric(d.KPIs.SexRatio, mean)},
		{"Districts", d.KPIs.Districts},
		{"Correlation status", string(d.Correlation.Status)},
	}
	if d.Correlation.OK() {
		rows = append(rows,
			[]interface{}{"Pearson r", d.Correlation.R},
			[]interface{}{"p-value", d.Correlation.P},
			[]interface{}{"Strength", string(d.Correlation.Strength)},
		)
	}
	rows = append(rows, []interface{}{"Outliers", d.Outliers.Count})
	return rows
}
