package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Options controls how the input table is read.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension (',' or '\t').
	Delimiter rune
	// XLSX sheet selection; SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns options suitable for the bundled district file.
func DefaultOptions() Options {
	return Options{SheetIndex: 1}
}

// naValues are the cell spellings treated as missing.
var naValues = []string{"", "NA", "NaN", "nan", "<nil>", "null"}

// Load reads a CSV/TSV/XLSX file into a Dataset. It fails when the file is
// missing, cannot be parsed, or lacks any of RequiredColumns.
func Load(path string, opt Options) (*Dataset, error) {
	name := filepath.Base(path)
	lower := strings.ToLower(path)
	var df dataframe.DataFrame
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		records, err := readXLSX(path, opt.SheetName, opt.SheetIndex)
		if err != nil {
			return nil, err
		}
		df = dataframe.LoadRecords(records, loadOptions()...)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".txt"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		delim := opt.Delimiter
		if delim == 0 {
			delim = sniffDelimiter(path)
		}
		df = dataframe.ReadCSV(f, append(loadOptions(), dataframe.WithDelimiter(delim))...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, df.Err)
	}
	return fromFrame(name, df)
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(naValues),
		dataframe.WithTypes(map[string]series.Type{
			ColDistrict: series.String,
			ColState:    series.String,
		}),
	}
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// fromFrame converts a typed frame into records, checking required columns.
func fromFrame(name string, df dataframe.DataFrame) (*Dataset, error) {
	names := df.Names()
	types := df.Types()
	kind := make(map[string]series.Type, len(names))
	for i, n := range names {
		kind[n] = types[i]
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := kind[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{File: name, Columns: missing}
	}
	for _, c := range requiredNumeric {
		if !isNumeric(kind[c]) {
			return nil, fmt.Errorf("%w: %s: column %q is not numeric", ErrMalformed, name, c)
		}
	}

	nrow := df.Nrow()
	records := make([]Record, nrow)
	for i := range records {
		records[i] = Record{Values: map[string]float64{}, Text: map[string]string{}}
	}
	var numeric []string
	for _, col := range names {
		s := df.Col(col)
		if isNumeric(kind[col]) {
			numeric = append(numeric, col)
			vals := s.Float()
			for i := 0; i < nrow; i++ {
				records[i].Values[col] = vals[i]
			}
			continue
		}
		cells := s.Records()
		for i := 0; i < nrow; i++ {
			v := strings.TrimSpace(cells[i])
			if s.Elem(i).IsNA() {
				v = ""
			}
			records[i].Text[col] = v
		}
	}
	for i := range records {
		records[i].District = records[i].Text[ColDistrict]
		records[i].State = records[i].Text[ColState]
	}

	columns := append([]string(nil), names...)
	_, derived := kind[ColGenderLiteracyRatio]
	if !derived && isNumeric(kind[ColFemaleLiterate]) && isNumeric(kind[ColMaleLiterate]) {
		for i := range records {
			records[i].Values[ColGenderLiteracyRatio] = genderLiteracyRatio(
				records[i].Values[ColFemaleLiterate], records[i].Values[ColMaleLiterate])
		}
		columns = append(columns, ColGenderLiteracyRatio)
		numeric = append(numeric, ColGenderLiteracyRatio)
	}
	return New(name, columns, numeric, records), nil
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}
