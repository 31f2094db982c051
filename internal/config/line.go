package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/asisten/pkg/log"
)

type LineConfig struct {
	ChannelSecret string `env:"LINE_CHANNEL_SECRET,required,notEmpty"`
	ChannelToken  string `env:"LINE_CHANNEL_TOKEN,required,notEmpty"`
}

func NewLineConfig(ctx context.Context) *LineConfig {
	c := &LineConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LINE config")
	}
	return c
}

func (c LineConfig) GetLineChannelSecret() string {
	return c.ChannelSecret
}

func (c LineConfig) GetLineChannelToken() string {
	return c.ChannelToken
}
