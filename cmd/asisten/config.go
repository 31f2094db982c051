package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/asisten/internal/config"
	"github.com/sandevgo/asisten/internal/service/ui"
	"github.com/sandevgo/asisten/pkg/env"
	"github.com/spf13/cobra"
)

var showSecrets bool

type configSection struct {
	title string
	cfg   any
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Loads the runtime .env and the process environment and prints the resulting settings in .env form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		app := config.NewAppConfig(ctx)
		sections := []configSection{
			{"app", app},
			{"http", config.NewHTTPConfig(ctx)},
		}
		if app.IsTelegramSelected() {
			sections = append(sections, configSection{"telegram", config.NewTelegramConfig(ctx)})
		}
		if app.IsLineSelected() {
			sections = append(sections, configSection{"line", config.NewLineConfig(ctx)})
		}
		if app.GetStateBackend() == config.StateBackendRedis {
			sections = append(sections, configSection{"redis", config.NewRedisConfig(ctx)})
		}

		var opts []env.Option
		if !showSecrets {
			opts = append(opts, env.Redact("TELEGRAM_TOKEN", "LINE_CHANNEL_SECRET", "LINE_CHANNEL_TOKEN", "REDIS_PASSWORD"))
		}

		out := cmd.OutOrStdout()
		for _, s := range sections {
			content, err := env.MarshalEnv(s.cfg, opts...)
			if err != nil {
				return fmt.Errorf("failed to render %s config: %w", s.title, err)
			}
			fmt.Fprintln(out, ui.TitleStyle.Render(strings.ToUpper(s.title)))
			for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
				key, value, _ := strings.Cut(line, "=")
				fmt.Fprintf(out, "  %s=%s\n", ui.KeyStyle.Render(key), ui.ValueStyle.Render(value))
			}
		}
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print tokens and passwords in clear text")
	rootCmd.AddCommand(configCmd)
}
