package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lunch_oracle/internal/app/di"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/transport/handler"
	"lunch_oracle/internal/platform/session"
)

type runOptions struct {
	image       string
	label       string
	reflections []string
	timeout     time.Duration
	asJSON      bool
}

func newRunCmd(opts *options) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline once for an image and reflections",
		Long: `Run classifies the image (or takes --label as given), asks for a prophecy
built from the label and the reflections, and prints nearby lunch spots.

Example:
  oracle run --image mug.jpg --reflection "it keeps me warm" --reflection "a gift from home"
  oracle run --label "a wallet" --reflection "I should save money" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, ro)
		},
	}

	cmd.Flags().StringVar(&ro.image, "image", "", "path to a JPEG, PNG, GIF or WebP image")
	cmd.Flags().StringVar(&ro.label, "label", "", "use this label instead of classifying the image")
	cmd.Flags().StringArrayVarP(&ro.reflections, "reflection", "r", nil, "what the object means to you (repeatable)")
	cmd.Flags().DurationVar(&ro.timeout, "timeout", 2*time.Minute, "overall timeout")
	cmd.Flags().BoolVar(&ro.asJSON, "json", false, "print the session as JSON")
	return cmd
}

func runPipeline(cmd *cobra.Command, opts *options, ro *runOptions) error {
	if ro.image == "" && ro.label == "" {
		return errors.New("either --image or --label is required")
	}
	if len(ro.reflections) == 0 {
		return errors.New("at least one --reflection is required")
	}

	var image []byte
	if ro.image != "" {
		b, err := os.ReadFile(ro.image)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		image = b
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ro.timeout)
	defer cancel()

	cfg := opts.cfg
	rdb := di.NewRedisClient(ctx, cfg.Redis)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	uc, closer, err := di.NewOracleUsecase(ctx, cfg, di.NewMemoStore(rdb, cfg.Cache), session.NewSessionMemory(cfg.Session.TTL))
	if err != nil {
		return err
	}
	defer closer()

	s, err := uc.StartSession(ctx, image, ro.label)
	if err != nil {
		return err
	}
	s, err = uc.Reflect(ctx, s.ID, ro.reflections)
	if err != nil {
		return err
	}

	if ro.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	printSession(cmd.OutOrStdout(), s)
	return nil
}

func printSession(w io.Writer, s *entity.Session) {
	if c := s.Classification; c != nil {
		switch {
		case c.Overridden:
			fmt.Fprintf(w, "Object: %s (given)\n", c.Label)
		case c.Failure != nil:
			fmt.Fprintf(w, "Object: %s (%s)\n", c.Label, c.Failure.Message)
		default:
			fmt.Fprintf(w, "Object: %s\n", c.Label)
			for _, sc := range c.Scores {
				fmt.Fprintf(w, "  %-24s %5.1f%%\n", sc.Label, sc.Score*100)
			}
		}
	}
	if p := s.Prophecy; p != nil {
		fmt.Fprintf(w, "\nProphecy:\n%s\n\nKeyword: %s\n", p.Narrative, p.Keyword)
	}
	if v := s.Venues; v != nil {
		printVenues(w, v)
	}
}

func printVenues(w io.Writer, v *entity.VenueResult) {
	fmt.Fprintln(w, "\nLunch spots:")
	for i, venue := range v.Venues {
		fmt.Fprintf(w, "  %d. %s\n", i+1, handler.FormatVenue(venue))
	}
}
