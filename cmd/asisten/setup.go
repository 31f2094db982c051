package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sandevgo/asisten/internal/config"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/internal/service/command"
	"github.com/sandevgo/asisten/internal/service/dialogue"
	"github.com/sandevgo/asisten/internal/service/metrics"
	"github.com/sandevgo/asisten/internal/storage/redis"
	"github.com/sandevgo/asisten/internal/storage/sqlite"
	"github.com/sandevgo/asisten/internal/transport/cli"
	"github.com/sandevgo/asisten/internal/transport/line"
	"github.com/sandevgo/asisten/internal/transport/telegram"
	"github.com/sandevgo/asisten/internal/transport/web"
	"github.com/sandevgo/asisten/pkg/log"
	"github.com/sandevgo/asisten/pkg/srv"
)

// transports selects which channels NewServices starts.
type transports struct {
	telegram bool
	line     bool
	cli      bool
}

func transportsFromConfig(cfg *config.AppConfig) transports {
	return transports{
		telegram: cfg.IsTelegramSelected(),
		line:     cfg.IsLineSelected(),
		cli:      cfg.IsCLISelected(),
	}
}

func NewServices(ctx context.Context, cfg *config.AppConfig, dbPath string, selected transports) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Storage
	db, err := sqlite.NewDB(ctx, dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	accounts := sqlite.NewAccountsRepo(db)

	states, closeStates, err := initStateStore(ctx, cfg, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize state store")
	}
	if closeStates != nil {
		services = append(services, srv.NewCleanup(closeStates))
	}

	// 2. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	dialogueMetrics := metrics.NewDialogue(reg)

	// 3. Commands and dialogue
	handlers := command.NewCommands(cfg, accounts)
	resolver, err := command.NewResolver(handlers)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build intent resolver")
	}
	engine := command.NewEngine(accounts)
	dispatcher := dialogue.NewService(resolver, engine, states, dialogueMetrics)

	logger.Debug().Int("handlers", len(handlers)).Str("states", cfg.GetStateBackend()).Msg("dialogue ready")

	// 4. Transports
	ts, err := initTransports(ctx, cfg, selected, dispatcher, reg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, ts...)

	return services
}

// initStateStore returns the configured StateStore and, for external
// backends, a close function.
func initStateStore(ctx context.Context, cfg *config.AppConfig, db *sql.DB) (core.StateStore, func() error, error) {
	if cfg.GetStateBackend() != config.StateBackendRedis {
		return sqlite.NewStatesRepo(db), nil, nil
	}

	rc := config.NewRedisConfig(ctx)
	store := redis.New(rc.Addr, rc.Password, rc.DB,
		redis.WithPrefix(rc.Prefix),
		redis.WithTTL(rc.StateTTL),
	)
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	log.FromCtx(ctx).Info().Str("addr", rc.Addr).Msg("using redis state store")
	return store, store.Close, nil
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	selected transports,
	dispatcher core.Dispatcher,
	reg *prometheus.Registry,
) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if selected.telegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, dispatcher)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// HTTP server: LINE webhook and metrics
	httpCfg := config.NewHTTPConfig(ctx)
	routes := web.Routes{}
	if selected.line {
		lineCfg := config.NewLineConfig(ctx)
		replier, err := line.NewReplier(lineCfg)
		if err != nil {
			return nil, err
		}
		routes.LineWebhook = line.NewWebhook(lineCfg, dispatcher, replier)
	}
	if httpCfg.EnableMetrics {
		routes.Metrics = reg
	}
	// The local chat alone does not expose a server.
	if routes.LineWebhook != nil || (routes.Metrics != nil && selected.telegram) {
		services = append(services, web.NewServer(ctx, httpCfg.Addr, routes))
	}

	// Local chat
	if selected.cli {
		rl, err := cli.NewReadLine(dispatcher, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
