package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/asisten/internal/config"
	"github.com/sandevgo/asisten/internal/service/installer"
	"github.com/sandevgo/asisten/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure channels and storage",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		// run wizard (includes save step)
		state, err := installer.RunWizard()
		if err != nil {
			return err
		}

		// Load the newly created .env file so NewAppConfig can see the values
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		cfg := config.NewAppConfig(ctx)
		logger.Info().
			Int("vars", len(state.EnvVars)).
			Str("states", cfg.GetStateBackend()).
			Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'asisten start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
