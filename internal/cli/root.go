package cli

import (
	"context"
	"log/slog"

	"github.com/me/invdash/internal/config"
	"github.com/me/invdash/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDataDir   string
	flagAddr      string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	app    *App
)

// NewRootCmd creates the root cobra command for the invdash CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "invdash",
		Short: "invdash — inventory dashboard client",
		Long:  "invdash authenticates against an inventory backend and serves a local dashboard UI.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if flagServer != "" {
				cfg.Server = flagServer
			}
			if flagDataDir != "" {
				cfg.DataDir = flagDataDir
			}
			if flagAddr != "" {
				cfg.Addr = flagAddr
			}

			app, err = NewApp(cfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return app.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "Inventory backend URL (or INVDASH_SERVER env)")
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Local data directory (or INVDASH_DATA_DIR env)")
	root.PersistentFlags().StringVar(&flagAddr, "addr", "", "Dashboard listen address")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newServeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProductsCmd(),
		newSalesCmd(),
	)

	return root
}

// bootstrap restores the stored session before a command runs.
func bootstrap(ctx context.Context) {
	app.Gateway.Bootstrap(ctx)
}
