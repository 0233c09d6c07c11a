package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/indiaviz-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set IndiaViz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_path: %s\n", c.DataPath)
		fmt.Fprintf(out, "default_region: %s\n", c.DefaultRegion)
		fmt.Fprintf(out, "default_primary: %s\n", c.DefaultPrimary)
		fmt.Fprintf(out, "default_secondary: %s\n", c.DefaultSecondary)
		fmt.Fprintf(out, "normalize: %t\n", c.Normalize)
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		fmt.Fprintf(out, "outlier_threshold: %.2f\n", c.OutlierThreshold)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", c.SheetIndex)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := config()
		switch key {
		case "data_path":
			c.DataPath = val
		case "default_region":
			c.DefaultRegion = val
		case "default_primary":
			c.DefaultPrimary = val
		case "default_secondary":
			c.DefaultSecondary = val
		case "normalize":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for normalize: %v", val)
			}
			c.Normalize = b
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			c.TopN = i
		case "outlier_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for outlier_threshold: %v", val)
			}
			c.OutlierThreshold = f
		case "output_dir":
			c.OutputDir = val
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "sheet_name":
			c.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for sheet_index: %v (1-based)", val)
			}
			c.SheetIndex = i
		default:
			return fmt.Errorf("unknown key: %s (known: %v)", key, cfgpkg.Keys)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		okColor.Println("✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
