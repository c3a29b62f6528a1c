package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/config"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Developer portfolio front-end",
	Long: `folio serves the portfolio site backed by the portfolio API and renders
the same data in the terminal: contribution calendar, live coding status,
the diagnostic quiz and the visit log.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "folio.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(visitsCmd)
	rootCmd.AddCommand(adminCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("config loaded", "path", configPath, "backend", cfg.Backend.BaseURL)
	return nil
}

func newClient(cmd *cobra.Command) *api.Client {
	return api.NewClient(cmd.Context(), cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout)
}
