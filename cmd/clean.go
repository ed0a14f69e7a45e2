package cmd

import (
	"fmt"

	"github.com/KaramelBytes/wordloom/internal/cleaner"
	"github.com/KaramelBytes/wordloom/internal/table"
	"github.com/KaramelBytes/wordloom/internal/utils"
	"github.com/spf13/cobra"
)

var (
	cleanOutputPath  string
	cleanDateFormat  string
	cleanFormatDates bool
	cleanFormatTimes bool
	cleanDiacritics  []string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Run the cleaning pipeline and write the rows as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := sourceArg(args)
		if err != nil {
			return err
		}
		d, rep, err := loadCleaned(cmd.Context(), src)
		if err != nil {
			return err
		}
		// Presentation-only steps run after the main pipeline.
		c := newCleaner()
		var post cleaner.Pipeline
		if len(cleanDiacritics) > 0 {
			post = append(post, c.StripDiacritics(cleanDiacritics))
		}
		if cleanFormatDates || cleanFormatTimes {
			plan, err := buildPlan()
			if err != nil {
				return err
			}
			if cleanFormatTimes {
				post = append(post, c.FormatDatetimes(plan.DatetimeColumns, cleanDateFormat))
			} else {
				post = append(post, c.FormatDates(plan.DatetimeColumns, cleanDateFormat))
			}
		}
		if len(post) > 0 {
			if d, _, err = post.Run(cmd.Context(), d); err != nil {
				return err
			}
		}

		b, err := utils.PrettyJSON(rowsOf(d))
		if err != nil {
			return err
		}
		if err := utils.WriteOutput(cmd.OutOrStdout(), cleanOutputPath, append(b, '\n')); err != nil {
			return err
		}
		printReport(cmd.ErrOrStderr(), rep)
		if cleanOutputPath != "" && cleanOutputPath != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d cleaned rows to %s\n", d.Len(), cleanOutputPath)
		}
		return nil
	},
}

// rowsOf returns rows in dataset order with every column present.
func rowsOf(d table.Dataset) []table.Row {
	cols := d.Columns()
	out := make([]table.Row, d.Len())
	for i := range out {
		r := make(table.Row, len(cols))
		for _, c := range cols {
			r[c] = d.Value(i, c)
		}
		out[i] = r
	}
	return out
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutputPath, "output", "o", "", "path to write cleaned JSON (default stdout)")
	cleanCmd.Flags().BoolVar(&cleanFormatDates, "format-dates", false, "render parsed datetime columns as text")
	cleanCmd.Flags().BoolVar(&cleanFormatTimes, "format-datetimes", false, "render parsed datetime columns as text with the time of day")
	cleanCmd.Flags().StringVar(&cleanDateFormat, "date-format", "", "day.js style pattern for --format-dates/--format-datetimes (default DD-MM-YYYY or DD-MM-YYYY HH:mm:ss)")
	cleanCmd.Flags().StringSliceVar(&cleanDiacritics, "strip-diacritics", nil, "columns to strip accents from (ñ is kept)")
}
