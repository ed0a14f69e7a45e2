package cmd

import (
	"fmt"

	"github.com/KaramelBytes/wordloom/internal/dashboard"
	"github.com/KaramelBytes/wordloom/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chartOutputPath   string
	chartKind         string
	chartField        string
	chartInstitutions []string
	chartMaxWords     int
	chartColorScale   string
	chartTitle        string
)

var chartCmd = &cobra.Command{
	Use:   "chart [file]",
	Short: "Build a Plotly figure (treemap, scatter or sunburst) of word frequencies",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := sourceArg(args)
		if err != nil {
			return err
		}
		s, err := loadSession(cmd.Context(), src)
		if err != nil {
			return err
		}
		view, err := s.Render(cmd.Context(), dashboard.Query{
			Field:      defaultField(chartField),
			Categories: chartInstitutions,
			Kind:       chartKind,
			MaxWords:   chartMaxWords,
			ColorScale: chartColorScale,
			Title:      chartTitle,
		})
		if err != nil {
			return err
		}
		b, err := utils.PrettyJSON(view.Figure)
		if err != nil {
			return err
		}
		if err := utils.WriteOutput(cmd.OutOrStdout(), chartOutputPath, append(b, '\n')); err != nil {
			return err
		}
		if chartOutputPath != "" && chartOutputPath != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s chart of %d words (%d observations) to %s\n",
				view.Kind, view.Shown, view.Observations, chartOutputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutputPath, "output", "o", "", "path to write the figure JSON (default stdout)")
	chartCmd.Flags().StringVarP(&chartKind, "kind", "k", "", "chart kind: treemap|scatter|sunburst (default: chart_kind)")
	chartCmd.Flags().StringVarP(&chartField, "field", "f", "", "text field to count (default: first of text_fields)")
	chartCmd.Flags().StringSliceVarP(&chartInstitutions, "institution", "i", nil, "only rows of these institutions (repeatable)")
	chartCmd.Flags().IntVarP(&chartMaxWords, "max-words", "n", 0, "number of words to chart (default: max_words)")
	chartCmd.Flags().StringVar(&chartColorScale, "color-scale", "", "Plotly color scale name (default: color_scale)")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "chart title (default: title)")
}
