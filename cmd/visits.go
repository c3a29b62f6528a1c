package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/termview"
	"github.com/arslanca/portfolio-web/internal/visits"
)

var (
	visitsRecent int
	visitsPrune  bool
)

var visitsCmd = &cobra.Command{
	Use:   "visits",
	Short: "Show page-view statistics from the visit log",
	Args:  cobra.NoArgs,
	RunE:  runVisits,
}

func init() {
	visitsCmd.Flags().IntVar(&visitsRecent, "recent", 0, "Also list the N most recent visits")
	visitsCmd.Flags().BoolVar(&visitsPrune, "prune", true, "Drop visits past the retention window first")
}

func runVisits(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if !cfg.Visits.Enabled {
		return errors.New("visit log is disabled")
	}

	store, err := visits.Open(cfg.Visits.DBPath, cfg.Visits.Salt)
	if err != nil {
		return fmt.Errorf("opening visit log: %w", err)
	}
	defer store.Close()

	if visitsPrune {
		if _, err := store.Prune(ctx, cfg.Visits.RetentionMonths); err != nil {
			return err
		}
	}

	sum, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, termview.RenderVisits(sum))

	if visitsRecent > 0 {
		recent, err := store.Recent(ctx, visitsRecent)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, termview.RenderRecent(recent))
	}
	return nil
}
