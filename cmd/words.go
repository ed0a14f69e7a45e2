package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/KaramelBytes/wordloom/internal/dashboard"
	"github.com/KaramelBytes/wordloom/internal/utils"
	"github.com/spf13/cobra"
)

var (
	wordsField        string
	wordsInstitutions []string
	wordsMaxWords     int
	wordsJSON         bool
)

var wordsCmd = &cobra.Command{
	Use:   "words [file]",
	Short: "Rank the most frequent words of a text field",
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
			Field:      defaultField(wordsField),
			Categories: wordsInstitutions,
			MaxWords:   wordsMaxWords,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wordsJSON {
			b, err := utils.PrettyJSON(view.Frequencies)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tWORD\tCOUNT")
		for i, f := range view.Frequencies {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, f.Text, f.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Showing the top %d words among %d observations\n", view.Shown, view.Observations)
		return nil
	},
}

// defaultField falls back to the first configured text field.
func defaultField(f string) string {
	if f != "" || len(cfg.TextFields) == 0 {
		return f
	}
	return cfg.TextFields[0]
}

func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.Flags().StringVarP(&wordsField, "field", "f", "", "text field to count (default: first of text_fields)")
	wordsCmd.Flags().StringSliceVarP(&wordsInstitutions, "institution", "i", nil, "only rows of these institutions (repeatable)")
	wordsCmd.Flags().IntVarP(&wordsMaxWords, "max-words", "n", 0, "number of words to show (default: max_words)")
	wordsCmd.Flags().BoolVar(&wordsJSON, "json", false, "print frequencies as JSON")
}
