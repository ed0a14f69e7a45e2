package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/wordloom/internal/analysis"
	"github.com/KaramelBytes/wordloom/internal/table"
	"github.com/KaramelBytes/wordloom/internal/utils"
	"github.com/spf13/cobra"
)

var (
	profOutputPath string
	profSampleRows int
	profMaxRows    int
	profGroupBy    string
	profOutliers   bool
	profOutlierThr float64
	profRaw        bool
)

var profileCmd = &cobra.Command{
	Use:   "profile [file]",
	Short: "Summarize each column of the (cleaned) dataset as Markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := sourceArg(args)
		if err != nil {
			return err
		}
		var d table.Dataset
		if profRaw {
			d, err = rawSource(src)(cmd.Context())
		} else {
			d, _, err = loadCleaned(cmd.Context(), src)
		}
		if err != nil {
			return err
		}

		opt := analysis.DefaultOptions()
		opt.Name = filepath.Base(src)
		if profSampleRows >= 0 {
			opt.SampleRows = profSampleRows
		}
		if profMaxRows > 0 {
			opt.MaxRows = profMaxRows
		}
		opt.GroupBy = profGroupBy
		opt.Outliers = profOutliers
		opt.OutlierThreshold = profOutlierThr
		md := analysis.Profile(d, opt).Markdown()

		if err := utils.WriteOutput(cmd.OutOrStdout(), profOutputPath, []byte(md)); err != nil {
			return err
		}
		if profOutputPath != "" && profOutputPath != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote profile to %s\n", profOutputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile (Markdown)")
	profileCmd.Flags().IntVar(&profSampleRows, "sample-rows", 5, "number of sample rows to include")
	profileCmd.Flags().IntVar(&profMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	profileCmd.Flags().StringVar(&profGroupBy, "group-by", "institution", "column to count group sizes by (empty to skip)")
	profileCmd.Flags().BoolVar(&profOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	profileCmd.Flags().Float64Var(&profOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	profileCmd.Flags().BoolVar(&profRaw, "raw", false, "profile the file as loaded, without cleaning")
}
