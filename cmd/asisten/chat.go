package main

import (
	"github.com/sandevgo/asisten/internal/config"
	"github.com/sandevgo/asisten/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var ephemeral bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot from the terminal",
	Long:  `Starts only the local chat as conversation cli@local. With --ephemeral, accounts and states live in memory and vanish on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(cfg *config.AppConfig) (string, transports) {
			dbPath := cfg.GetDatabasePath()
			if ephemeral {
				dbPath = sqlite.InMemory
				cfg.StateBackend = config.StateBackendSQLite
			}
			return dbPath, transports{cli: true}
		})
	},
}

func init() {
	chatCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep accounts in memory only")
	rootCmd.AddCommand(chatCmd)
}
