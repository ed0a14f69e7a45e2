package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var institutionsCmd = &cobra.Command{
	Use:   "institutions [file]",
	Short: "List the distinct institutions after cleaning",
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
		cats, err := s.Categories()
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(institutionsCmd)
}
