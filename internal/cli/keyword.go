package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lunch_oracle/internal/app/di"
)

func newKeywordCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keyword <text>...",
		Short: "Extract the food keyword from a prophecy text",
		Long: `Keyword prints the first cuisine from the configured dictionary that appears
in the text, or "lunch" when none does.

Example:
  oracle keyword "The steam of a humble pho will guide you"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor, err := di.NewKeywordExtractor(opts.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), extractor.Extract(strings.Join(args, " ")))
			return nil
		},
	}
}
