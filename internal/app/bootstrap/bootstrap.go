package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	reviewengine "codecomp/contexts/competition/review-engine"
	postgresadapter "codecomp/contexts/competition/review-engine/adapters/postgres"
	"codecomp/contexts/competition/review-engine/adapters/slackmsg"
	"codecomp/contexts/competition/review-engine/application/workers"
	"codecomp/internal/platform/config"
	"codecomp/internal/platform/db"
	"codecomp/internal/platform/httpserver"
	"codecomp/internal/shared/serial"

	"github.com/slack-go/slack"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type BotApp struct {
	server *httpserver.Server

	// The claim expirer runs in-process: review claims live in the
	// engine's registry, not the store, so a separate process would
	// sweep an empty one.
	expirer        workers.ClaimExpirer
	expirerEnabled bool
	pollInterval   time.Duration

	postgres *db.Postgres
	writer   *serial.Writer
	logger   *slog.Logger
}

func BuildBot() (*BotApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "bot")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.SlackBotToken) == "" {
		return nil, errors.New("SLACK_BOT_TOKEN is required")
	}
	if strings.TrimSpace(cfg.ReviewChannelID) == "" {
		return nil, errors.New("REVIEW_CHANNEL_ID is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	client := slack.New(cfg.SlackBotToken)
	messenger := slackmsg.NewMessenger(client, cfg.ReviewChannelID, logger)
	writer := serial.NewWriter(cfg.SerialQueueDepth, logger)

	module := reviewengine.NewModule(reviewengine.Dependencies{
		Repository: postgresadapter.NewRepository(pg.DB, logger),
		Messenger:  messenger,
		Clock:      postgresadapter.SystemClock{},
		IDGen:      postgresadapter.UUIDGenerator{},
		Sequencer:  writer,
		ClaimTTL:   cfg.ClaimTTL,
		Logger:     logger,
	})

	server := httpserver.New(httpserver.Options{
		Engine:  module,
		IsAdmin: cfg.IsAdmin,
		Slack: httpserver.SlackOptions{
			SigningSecret:      cfg.SlackSigningSecret,
			ChallengeChannelID: cfg.ChallengeChannelID,
			ReviewChannelID:    cfg.ReviewChannelID,
		},
		Logger:        logger,
		Addr:          normalizeAddr(cfg.HTTPPort),
		EnableSwagger: cfg.EnableSwagger,
	})

	return &BotApp{
		server:         server,
		expirer:        module.Expirer,
		expirerEnabled: cfg.EnableClaimExpirer,
		pollInterval:   cfg.WorkerPollInterval,
		postgres:       pg,
		writer:         writer,
		logger:         logger,
	}, nil
}

func (a *BotApp) Run(ctx context.Context) error {
	a.logger.Info("bot app started",
		"event", "bootstrap_bot_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", a.pollInterval.String(),
	)

	if a.expirerEnabled {
		go a.runExpirer(ctx)
	}
	return a.server.Start()
}

func (a *BotApp) runExpirer(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := a.expirer.RunOnce(ctx); err != nil {
			a.logger.Error("claim expirer sweep failed",
				"event", "claim_expirer_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}
}

func (a *BotApp) Close() error {
	if a.writer != nil {
		a.writer.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
