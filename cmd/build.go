package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"github.com/KaramelBytes/indiaviz-cli/internal/charts"
	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
	"github.com/KaramelBytes/indiaviz-cli/internal/export"
	"github.com/KaramelBytes/indiaviz-cli/internal/report"
	"github.com/KaramelBytes/indiaviz-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	bldRegion     string
	bldPrimary    string
	bldSecondary  string
	bldNormalize  bool
	bldTopN       int
	bldOutlierThr float64
	bldFormat     string
	bldOutputPath string
	bldExportCSV  bool
	bldExportXLSX bool
	bldCharts     bool
	bldOutDir     string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the dashboard for a region and two parameters",
	Long: `Build runs the pipeline for one selection: filter by region, optionally min-max
normalize the two parameters, then aggregate, rank, flag z-score outliers and
correlate. The report goes to stdout or --output; exports and charts go to --out-dir.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch bldFormat {
		case "markdown", "md", "table", "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|table|json)", bldFormat)
		}
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		sel, err := selectionFromFlags(cmd, ds)
		if err != nil {
			return err
		}
		c := config()
		opt := analysis.DefaultOptions()
		opt.TopN = c.TopN
		opt.OutlierThreshold = c.OutlierThreshold
		if cmd.Flags().Changed("top") {
			opt.TopN = bldTopN
		}
		if cmd.Flags().Changed("outlier-threshold") {
			opt.OutlierThreshold = bldOutlierThr
		}

		s := analysis.NewSession(ds, opt)
		d, err := s.Build(sel)
		if err != nil {
			return err
		}
		debugf("build %s: %s, %d rows, state %s", d.ID, d.Selection.Region, d.View.Len(), s.State())
		for _, w := range d.Warnings {
			warnf("%s", w)
		}

		out, err := render(d)
		if err != nil {
			return err
		}
		if bldOutputPath != "" {
			if err := utils.SafeWriteFile(bldOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			okColor.Printf("✓ Wrote dashboard to %s\n", bldOutputPath)
		} else if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}

		if !bldExportCSV && !bldExportXLSX && !bldCharts {
			return nil
		}
		dir := bldOutDir
		if !cmd.Flags().Changed("out-dir") && c.OutputDir != "" {
			dir = c.OutputDir
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		region := d.Selection.Region
		if bldExportCSV {
			var buf bytes.Buffer
			if err := export.WriteCSV(&buf, d.View); err != nil {
				return err
			}
			p := filepath.Join(dir, export.FileName(region, "csv"))
			if err := utils.SafeWriteFile(p, buf.Bytes()); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			okColor.Printf("✓ Wrote %d rows to %s\n", d.View.Len(), p)
		}
		if bldExportXLSX {
			p := filepath.Join(dir, export.FileName(region, "xlsx"))
			if err := export.WriteXLSX(p, d); err != nil {
				return err
			}
			okColor.Printf("✓ Wrote %s\n", p)
		}
		if bldCharts {
			paths, err := charts.RenderAll(dir, d, export.Slug(region))
			if err != nil {
				return err
			}
			for _, p := range paths {
				okColor.Printf("✓ Wrote %s\n", p)
			}
		}
		return nil
	},
}

// selectionFromFlags applies flag > config > first sorted parameters.
func selectionFromFlags(cmd *cobra.Command, ds *dataset.Dataset) (analysis.Selection, error) {
	c := config()
	sel := analysis.Selection{
		Region:    firstNonEmpty(bldRegion, c.DefaultRegion, analysis.Overall),
		Primary:   firstNonEmpty(bldPrimary, c.DefaultPrimary),
		Secondary: firstNonEmpty(bldSecondary, c.DefaultSecondary),
		Normalize: c.Normalize,
	}
	if cmd.Flags().Changed("normalize") {
		sel.Normalize = bldNormalize
	}
	params := ds.NumericColumns()
	if len(params) == 0 {
		return sel, fmt.Errorf("%s has no numeric parameters", ds.Name)
	}
	if sel.Primary == "" {
		sel.Primary = params[0]
	}
	if sel.Secondary == "" {
		sel.Secondary = params[0]
		if len(params) > 1 {
			sel.Secondary = params[1]
		}
	}
	if strings.EqualFold(sel.Region, analysis.Overall) {
		sel.Region = analysis.Overall
	}
	return sel, nil
}

func render(d *analysis.Dashboard) ([]byte, error) {
	switch bldFormat {
	case "table":
		var buf bytes.Buffer
		if err := report.WriteTables(&buf, d); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		b, err := utils.PrettyJSON(d)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return []byte(report.Markdown(d)), nil
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&bldRegion, "region", "r", "", "region (state) to show, or 'Overall'")
	buildCmd.Flags().StringVarP(&bldPrimary, "primary", "p", "", "primary parameter (marker size, rankings, outliers)")
	buildCmd.Flags().StringVarP(&bldSecondary, "secondary", "s", "", "secondary parameter (marker colour, correlation)")
	buildCmd.Flags().BoolVar(&bldNormalize, "normalize", false, "min-max scale both parameters to [0,1] within the region")
	buildCmd.Flags().IntVar(&bldTopN, "top", 10, "number of districts in top/bottom rankings")
	buildCmd.Flags().Float64Var(&bldOutlierThr, "outlier-threshold", 2, "flag rows with |z| above this value")
	buildCmd.Flags().StringVarP(&bldFormat, "format", "f", "markdown", "report format: markdown|table|json")
	buildCmd.Flags().StringVarP(&bldOutputPath, "output", "o", "", "optional path to write the report")
	buildCmd.Flags().BoolVar(&bldExportCSV, "export-csv", false, "write <region>_data.csv with the filtered view")
	buildCmd.Flags().BoolVar(&bldExportXLSX, "export-xlsx", false, "write <region>_data.xlsx with the view and a summary sheet")
	buildCmd.Flags().BoolVar(&bldCharts, "charts", false, "write bar, scatter and map PNG charts")
	buildCmd.Flags().StringVar(&bldOutDir, "out-dir", ".", "directory for exports and charts")
}
