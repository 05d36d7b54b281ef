package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect Lunch Oracle configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if f := opts.v.ConfigFileUsed(); f != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", f)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults and environment)\n\n")
			}

			data, err := yaml.Marshal(opts.cfg.Redacted())
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	})
	return cmd
}
