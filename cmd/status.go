package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/livestatus"
	"github.com/arslanca/portfolio-web/internal/termview"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the live coding status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Keep the counters running until interrupted")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := newClient(cmd)
	out := cmd.OutOrStdout()

	if !statusWatch {
		stats, err := client.CurrentStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching status: %w", err)
		}
		fmt.Fprintln(out, termview.RenderStatus(livestatus.Snapshot(*stats)))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watchStatus(ctx, client, out, livestatus.ResyncInterval, livestatus.TickInterval)
}

type statsSource interface {
	CurrentStats(ctx context.Context) (*api.StatsResponse, error)
}

// watchStatus redraws the badge every tick and refetches it every resync
// until ctx is done. A failed fetch shows the owner as offline until the
// next successful one.
func watchStatus(ctx context.Context, src statsSource, out io.Writer, resync, tick time.Duration) error {
	var tracker livestatus.Tracker

	sync := func() {
		stats, err := src.CurrentStats(ctx)
		if err != nil {
			logger.Warn("fetching status", "err", err)
			tracker.Reset()
			return
		}
		tracker.Sync(*stats, time.Now())
	}
	draw := func() {
		// Clear the screen and home the cursor.
		fmt.Fprint(out, "\033[H\033[2J")
		fmt.Fprintln(out, termview.RenderStatus(tracker.At(time.Now())))
	}

	sync()
	draw()

	resyncT := time.NewTicker(resync)
	defer resyncT.Stop()
	tickT := time.NewTicker(tick)
	defer tickT.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-resyncT.C:
			sync()
			draw()
		case <-tickT.C:
			draw()
		}
	}
}
