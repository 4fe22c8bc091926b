package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/thinobj/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation preview server",
		Long: `Serve exposes POST /v1/generate, which transforms a single source file and
returns its companion or the diagnostics of the failure. Super interfaces
from other packages are not loaded; they produce warnings instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.config.GetBool(keyVerbose))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			server.SetLogger(logger)

			config := defaults
			config.Addr = a.config.GetString(keyServeAddr)
			config.MaxSourceBytes = a.config.GetInt64(keyServeMaxSource)
			config.EnableCORS = a.config.GetBool(keyServeCORS)
			config.ExperimentalInheritance = a.config.GetBool(keyInheritance)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(config, version).Start(ctx)
		},
	}

	cmd.Flags().String("addr", defaults.Addr, "listen address")
	cmd.Flags().Int64("max-source-bytes", defaults.MaxSourceBytes, "largest accepted source file")
	cmd.Flags().Bool("cors", defaults.EnableCORS, "enable CORS")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
