package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the rows of the selected sheet, padded to the header width.
// If sheetName is empty, sheetIndex (1-based) selects the sheet.
func readXLSX(path, sheetName string, sheetIndex int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	} else {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
		}
		target = sheets[idx-1]
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", ErrMalformed, target, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrMalformed, target)
	}
	// excelize trims trailing empty cells per row
	width := len(rows[0])
	for i, r := range rows {
		if len(r) < width {
			tmp := make([]string, width)
			copy(tmp, r)
			rows[i] = tmp
		} else if len(r) > width {
			rows[i] = r[:width]
		}
	}
	return rows, nil
}
