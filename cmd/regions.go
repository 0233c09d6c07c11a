package cmd

import (
	"fmt"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List selectable regions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, analysis.Overall)
		for _, r := range ds.Regions() {
			fmt.Fprintln(out, r)
		}
		return nil
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List numeric parameters (sorted)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		for _, p := range ds.NumericColumns() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(paramsCmd)
}
