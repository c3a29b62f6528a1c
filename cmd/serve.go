package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/visits"
	"github.com/arslanca/portfolio-web/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config or PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.Mode)

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	var vl web.VisitLog
	if cfg.Visits.Enabled {
		store, err := openVisits(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		vl = store
	}

	srv, err := web.New(newClient(cmd), vl, cfg.Site, logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx, addr)
}

// openVisits opens the visit log and drops rows past the retention window.
func openVisits(ctx context.Context) (*visits.Store, error) {
	store, err := visits.Open(cfg.Visits.DBPath, cfg.Visits.Salt)
	if err != nil {
		return nil, fmt.Errorf("opening visit log: %w", err)
	}
	if cfg.Visits.Salt == "" {
		logger.Warn("VISITS_SALT not set, visitor hashes will change on restart")
	}

	n, err := store.Prune(ctx, cfg.Visits.RetentionMonths)
	if err != nil {
		logger.Warn("pruning visit log", "err", err)
	} else if n > 0 {
		logger.Info("pruned old visits", "rows", n, "months", cfg.Visits.RetentionMonths)
	}
	return store, nil
}
