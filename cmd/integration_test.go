package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

const districtCSV = `District,State,Population,literacy_rate,sex_ratio,Latitude,Longitude
Pune,Maharashtra,9429408,86.15,915,18.52,73.85
Nagpur,Maharashtra,4653570,88.39,951,21.14,79.08
Patna,Bihar,5838465,70.68,897,25.59,85.13
Gaya,Bihar,4391418,63.67,937,24.79,85.00
`

// resetFlags puts every flag back to its default so runs don't leak state.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
		for _, sub := range c.Commands() {
			reset(sub.Flags())
		}
	}
	cfg = nil
}

// runCmd is a helper to execute the root command with args and capture stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	resetFlags()
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points HOME at a temp dir and writes the dataset into it.
func isolate(t *testing.T) (home, data string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	data = filepath.Join(home, "india.csv")
	if err := os.WriteFile(data, []byte(districtCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return home, data
}

func TestCLI_IdleShowsWelcome(t *testing.T) {
	isolate(t)
	out := runCmd(t)
	if !strings.Contains(out, "[WELCOME]") || !strings.Contains(out, "indiaviz build") {
		t.Fatalf("expected welcome text, got:\n%s", out)
	}
}

func TestCLI_RegionsAndParams(t *testing.T) {
	_, data := isolate(t)
	regions := strings.Fields(runCmd(t, "regions", "--data", data))
	if strings.Join(regions, ",") != "Overall,Maharashtra,Bihar" {
		t.Fatalf("regions = %v", regions)
	}
	params := strings.Fields(runCmd(t, "params", "--data", data))
	if strings.Join(params, ",") != "Latitude,Longitude,Population,literacy_rate,sex_ratio" {
		t.Fatalf("params = %v", params)
	}
}

func TestCLI_BuildWithExports(t *testing.T) {
	home, data := isolate(t)
	outDir := filepath.Join(home, "out")
	reportPath := filepath.Join(home, "report.md")
	runCmd(t, "build", "--data", data, "--region", "Maharashtra",
		"--primary", "Population", "--secondary", "literacy_rate",
		"--export-csv", "--export-xlsx", "--charts", "--out-dir", outDir, "-o", reportPath)

	md, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{"[DASHBOARD]", "Region: Maharashtra", "Total population: 14082978", "Districts: 2"} {
		if !strings.Contains(string(md), want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}

	f, err := os.Open(filepath.Join(outDir, "Maharashtra_data.csv"))
	if err != nil {
		t.Fatalf("open csv export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv export: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "Pune" || rows[2][0] != "Nagpur" {
		t.Fatalf("csv export = %v", rows)
	}
	for _, name := range []string{"Maharashtra_data.xlsx", "Maharashtra_bar.png", "Maharashtra_scatter.png", "Maharashtra_map.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestCLI_BuildNormalizedExport(t *testing.T) {
	home, data := isolate(t)
	runCmd(t, "build", "--data", data, "--region", "Bihar", "--primary", "Population",
		"--secondary", "literacy_rate", "--normalize", "--export-csv", "--out-dir", home)
	b, err := os.ReadFile(filepath.Join(home, "Bihar_data.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	// Patna has the larger population and literacy, Gaya the smaller.
	if rows[1][2] != "1" || rows[2][2] != "0" || rows[1][3] != "1" || rows[2][3] != "0" {
		t.Fatalf("normalized export = %v", rows)
	}
}

func TestCLI_BuildDefaultsToFirstParameters(t *testing.T) {
	_, data := isolate(t)
	out := runCmd(t, "build", "--data", data, "--format", "json")
	if !strings.Contains(out, `"primary": "Latitude"`) || !strings.Contains(out, `"secondary": "Longitude"`) {
		t.Fatalf("expected sorted-first defaults, got:\n%s", out)
	}
	if !strings.Contains(out, `"region": "Overall"`) {
		t.Fatalf("expected Overall region, got:\n%s", out)
	}
}

func TestCLI_BuildTableFormat(t *testing.T) {
	_, data := isolate(t)
	out := runCmd(t, "build", "--data", data, "-p", "sex_ratio", "-s", "literacy_rate", "-f", "table", "--top", "2")
	if !strings.Contains(out, "Top regions by population") || !strings.Contains(out, "Nagpur") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}

func TestCLI_BuildRejectsUnknownParameter(t *testing.T) {
	_, data := isolate(t)
	if _, err := execCmd("build", "--data", data, "--primary", "GDP", "--secondary", "sex_ratio"); err == nil {
		t.Fatalf("expected error for unknown parameter")
	}
	if _, err := execCmd("build", "--data", data, "--format", "pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, data := isolate(t)
	runCmd(t, "config", "set", "top_n", "3")
	runCmd(t, "config", "set", "data_path", data)
	runCmd(t, "config", "set", "default_primary", "literacy_rate")
	if _, err := os.Stat(filepath.Join(home, ".indiaviz", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "top_n: 3") || !strings.Contains(out, "default_primary: literacy_rate") {
		t.Fatalf("config show:\n%s", out)
	}
	if _, err := execCmd("config", "set", "top_n", "zero"); err == nil {
		t.Fatalf("expected error for invalid top_n")
	}

	// data_path and default_primary now come from config.
	js := runCmd(t, "build", "--format", "json")
	if !strings.Contains(js, `"primary": "literacy_rate"`) {
		t.Fatalf("configured primary not applied:\n%s", js)
	}
}
