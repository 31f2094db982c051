package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/asisten/pkg/log"
)

// HTTPConfig controls the server hosting the LINE webhook and /metrics.
type HTTPConfig struct {
	Addr          string `env:"HTTP_ADDR" envDefault:":8080"`
	EnableMetrics bool   `env:"ENABLE_METRICS" envDefault:"true"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}
