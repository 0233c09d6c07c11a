package dataset

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var districtRows = []string{
	"District,State,Population,literacy_rate,sex_ratio,Latitude,Longitude,Female_Literate,Male_Literate,Households",
	"Pune,Maharashtra,9429408,86.15,915,18.52,73.85,3500000,4200000,2000000",
	"Nagpur,Maharashtra,4653570,88.39,951,21.14,79.08,1800000,2000000,",
	"Patna,Bihar,5838465,70.68,897,25.59,85.13,1500000,2100000,1100000",
}

func writeCSV(t *testing.T, name string, rows []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadCSVDerivesRatioAndTypes(t *testing.T) {
	p := writeCSV(t, "india.csv", districtRows)
	ds, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Name != "india.csv" {
		t.Fatalf("name = %q", ds.Name)
	}
	if ds.Len() != 3 {
		t.Fatalf("rows = %d, want 3", ds.Len())
	}
	if ds.Records[0].District != "Pune" || ds.Records[2].State != "Bihar" {
		t.Fatalf("unexpected records: %+v", ds.Records)
	}
	if !ds.IsNumeric(ColGenderLiteracyRatio) {
		t.Fatalf("expected derived ratio column")
	}
	got, ok := ds.Records[0].Value(ColGenderLiteracyRatio)
	want := 3500000.0 / (4200000.0 + 1) * 100
	if !ok || math.Abs(got-want) > 1e-9 {
		t.Fatalf("ratio = %v (%v), want %v", got, ok, want)
	}
	if ds.Columns[len(ds.Columns)-1] != ColGenderLiteracyRatio {
		t.Fatalf("derived column should be appended last: %v", ds.Columns)
	}
	if _, ok := ds.Records[1].Value("Households"); ok {
		t.Fatalf("empty Households cell should be missing")
	}
	if ds.IsNumeric(ColDistrict) || ds.IsNumeric(ColState) {
		t.Fatalf("District/State must be text columns")
	}
}

func TestLoadWithoutRatioSourcesIsSilent(t *testing.T) {
	rows := []string{
		"District,State,Population,literacy_rate,sex_ratio,Latitude,Longitude",
		"Pune,Maharashtra,9429408,86.15,915,18.52,73.85",
	}
	ds, err := Load(writeCSV(t, "plain.csv", rows), DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.HasColumn(ColGenderLiteracyRatio) || ds.IsNumeric(ColGenderLiteracyRatio) {
		t.Fatalf("ratio must not be derived without both source columns")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	rows := []string{
		"District,State,Population",
		"Pune,Maharashtra,9429408",
	}
	_, err := Load(writeCSV(t, "partial.csv", rows), DefaultOptions())
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	want := []string{ColLiteracy, ColSexRatio, ColLatitude, ColLongitude}
	if strings.Join(mce.Columns, ",") != strings.Join(want, ",") {
		t.Fatalf("missing = %v, want %v", mce.Columns, want)
	}
}

func TestLoadMalformedRows(t *testing.T) {
	rows := []string{
		districtRows[0],
		"Pune,Maharashtra,9429408",
	}
	_, err := Load(writeCSV(t, "ragged.csv", rows), DefaultOptions())
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("data.json", DefaultOptions())
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestRegionsAndNumericColumns(t *testing.T) {
	ds, err := Load(writeCSV(t, "india.csv", districtRows), DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	regions := ds.Regions()
	if strings.Join(regions, ",") != "Maharashtra,Bihar" {
		t.Fatalf("regions = %v", regions)
	}
	cols := ds.NumericColumns()
	want := []string{
		"Female_Literate", "Gender_Literacy_Ratio", "Households", "Latitude", "Longitude",
		"Male_Literate", "Population", "literacy_rate", "sex_ratio",
	}
	if strings.Join(cols, ",") != strings.Join(want, ",") {
		t.Fatalf("numeric = %v, want %v", cols, want)
	}
}

func TestRecordCellAndClone(t *testing.T) {
	r := Record{
		District: "Pune",
		State:    "Maharashtra",
		Values:   map[string]float64{ColPopulation: 9429408, ColLiteracy: math.NaN()},
		Text:     map[string]string{"Note": "x"},
	}
	if r.Cell(ColPopulation) != "9429408" || r.Cell(ColLiteracy) != "" || r.Cell(ColDistrict) != "Pune" || r.Cell("Note") != "x" {
		t.Fatalf("unexpected cells")
	}
	c := r.Clone()
	c.Values[ColPopulation] = 1
	if r.Values[ColPopulation] != 9429408 {
		t.Fatalf("clone shares value map")
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Districts"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for i, line := range districtRows {
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Districts", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), "india.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	ds, err := Load(p, Options{SheetName: "districts"})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if ds.Len() != 3 || !ds.IsNumeric(ColPopulation) {
		t.Fatalf("unexpected xlsx dataset: %d rows", ds.Len())
	}
	if _, err := Load(p, Options{SheetName: "Missing"}); err == nil || !strings.Contains(err.Error(), "Available sheets") {
		t.Fatalf("expected sheet-not-found error, got %v", err)
	}
}
