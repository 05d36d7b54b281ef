package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"lunch_oracle/internal/app/di"
)

func newVenuesCmd(opts *options) *cobra.Command {
	var (
		location string
		limit    int
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "venues <keyword>",
		Short: "Search nearby affordable lunch spots for a food keyword",
		Example: `  oracle venues ramen
  oracle venues pho --location "Kendall Square, Cambridge, MA" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if location != "" {
				cfg.Venues.Location = location
			}
			if limit > 0 {
				cfg.Venues.Limit = limit
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			uc, err := di.NewVenueUsecase(cfg, nil)
			if err != nil {
				return err
			}
			q := uc.Query(args[0])
			slog.Debug("searching venues", "term", q.Term, "location", q.Location, "limit", q.Limit)

			res := uc.FindVenues(ctx, args[0])
			printVenues(cmd.OutOrStdout(), &res)
			if res.Failure != nil {
				return fmt.Errorf("venue search degraded: %w", res.Failure)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "search location (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of venues (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	return cmd
}
