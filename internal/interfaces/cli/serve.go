package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeCheck/internal/app"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long:  "Load the reference data and serve the HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if port > 0 {
				cfg.Server.Port = port
			}

			logger, err := app.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logging.Sync(logger)
			logging.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, logger, cliCtx.appOptions...)
			if err != nil {
				logger.Error("startup failed", logging.Err(err))
				return err
			}
			a.WatchLogLevel(cliCtx.ConfigPath)
			return a.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

//Personal.AI order the ending
