package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/asisten/pkg/log"
)

const (
	StateBackendSQLite = "sqlite"
	StateBackendRedis  = "redis"
)

type AppConfig struct {
	RuntimePath string `env:"ASISTEN_RUNTIME_PATH" envDefault:".asisten"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableLine     bool `env:"ENABLE_LINE" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Where dialogue states live: sqlite or redis
	StateBackend string `env:"STATE_BACKEND" envDefault:"sqlite"`

	// Dialogue rules
	IdentifierLength int `env:"IDENTIFIER_LENGTH" envDefault:"8"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	if c.StateBackend != StateBackendSQLite && c.StateBackend != StateBackendRedis {
		log.FromCtx(ctx).Fatal().Str("backend", c.StateBackend).Msg("unknown state backend")
	}
	if c.IdentifierLength <= 0 {
		log.FromCtx(ctx).Fatal().Int("length", c.IdentifierLength).Msg("identifier length must be positive")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "asisten.db")
}

func (c AppConfig) GetStateBackend() string {
	return c.StateBackend
}

func (c AppConfig) GetIdentifierLength() int {
	return c.IdentifierLength
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsLineSelected() bool {
	return c.EnableLine
}

func (c AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}
