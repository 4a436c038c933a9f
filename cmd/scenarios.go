package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the canned demo transcripts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		scenarios, err := commerce.DemoScenarios()
		if err != nil {
			return errs.Wrap(err, "load demo scenarios")
		}

		for _, sc := range scenarios {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n\t%s\n", sc.ID, sc.Language, sc.Title, sc.Transcript); err != nil {
				return errs.Wrap(err, "write scenarios output")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
