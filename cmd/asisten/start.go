package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/asisten/internal/config"
	"github.com/sandevgo/asisten/pkg/log"
	"github.com/sandevgo/asisten/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the configured channels",
	Long:  `Initializes storage and starts all configured channels (Telegram, LINE webhook, CLI) plus the metrics endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(cfg *config.AppConfig) (string, transports) {
			return cfg.GetDatabasePath(), transportsFromConfig(cfg)
		})
	},
}

// run loads the environment, starts the services picked by selectFn and
// blocks until interrupted or a foreground service finishes.
func run(parent context.Context, selectFn func(cfg *config.AppConfig) (string, transports)) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger setup
	var flushLog func()
	ctx, flushLog = setupLogger(ctx)
	defer flushLog()

	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	cfg := config.NewAppConfig(ctx)
	dbPath, selected := selectFn(cfg)
	logger.Info().
		Bool("telegram", selected.telegram).
		Bool("line", selected.line).
		Bool("cli", selected.cli).
		Msg("starting asisten")

	services := NewServices(ctx, cfg, dbPath, selected)

	srv.StartServices(ctx, services, stop)
	srv.ShutdownServices(ctx, services)

	logger.Info().Msg("asisten has been shut down gracefully")
	return nil
}

func init() {
	rootCmd.AddCommand(startCmd)
}
