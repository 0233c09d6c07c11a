package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/indiaviz-cli/internal/config"
	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
	"github.com/KaramelBytes/indiaviz-cli/internal/report"
	"github.com/KaramelBytes/indiaviz-cli/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// defaultDataFile is searched for upwards from the working directory when
// neither --data nor data_path is set.
const defaultDataFile = "india.csv"

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataPath string

	// Loaded configuration
	cfg *cfgpkg.Global

	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "indiaviz",
	Short: "IndiaViz CLI: district statistics dashboards for India",
	Long: `IndiaViz loads a district-level dataset (population, literacy, sex ratio, coordinates)
and builds a dashboard for a region and a pair of parameters: key metrics, rankings,
outliers, correlation, charts, a point map and CSV/XLSX exports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Nothing built yet: show the idle screen.
		fmt.Fprint(cmd.OutOrStdout(), report.Welcome())
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.indiaviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset file (.csv, .tsv, .txt or .xlsx); default data_path or ./india.csv")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		warnf("failed to load config: %v", err)
		c = &cfgpkg.Global{DefaultRegion: analysis.Overall, TopN: 10, OutlierThreshold: 2, OutputDir: ".", SheetIndex: 1}
	}
	cfg = c
}

// config returns the loaded config, loading it on first use for code paths
// that bypass Execute (tests).
func config() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

// resolveDataPath picks --data, then data_path, then the nearest india.csv.
func resolveDataPath() (string, error) {
	if dataPath != "" {
		return dataPath, nil
	}
	if p := config().DataPath; p != "" {
		return p, nil
	}
	p, err := utils.FindUp("", defaultDataFile)
	if err != nil {
		return "", fmt.Errorf("no dataset given (use --data or 'indiaviz config set data_path <file>'): %w", err)
	}
	return p, nil
}

// loadDataset reads the dataset with parsing options from config.
func loadDataset() (*dataset.Dataset, error) {
	path, err := resolveDataPath()
	if err != nil {
		return nil, err
	}
	c := config()
	opt := dataset.DefaultOptions()
	if opt.Delimiter, err = parseDelimiter(c.Delimiter); err != nil {
		return nil, err
	}
	opt.SheetName = c.SheetName
	if c.SheetIndex > 0 {
		opt.SheetIndex = c.SheetIndex
	}
	debugf("loading %s", path)
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	debugf("loaded %d rows, %d numeric parameters", ds.Len(), len(ds.NumericColumns()))
	return ds, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ',' | ';' | 'tab' | '|')", s)
	}
}

func warnf(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "⚠ Warning: "+format+"\n", args...)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
