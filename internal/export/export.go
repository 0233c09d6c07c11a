package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
)

// FileName builds "<region>_data.<ext>" with the region made filesystem safe.
func FileName(region, ext string) string {
	return Slug(region) + "_data." + strings.TrimPrefix(ext, ".")
}

// Slug turns a region name into a safe file name component.
func Slug(region string) string {
	s := strings.TrimSpace(region)
	if s == "" {
		s = analysis.Overall
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '&', r == '.':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "region"
	}
	return out
}

// WriteCSV writes the header and every row of v. Normalized columns carry
// their scaled values; missing numbers are empty cells.
func WriteCSV(w io.Writer, v *analysis.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(v.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(v.Columns))
	for i, r := range v.Rows {
		for j, col := range v.Columns {
			row[j] = r.Cell(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
