package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/backoffice/user-admin-api/internal/api"
	"github.com/backoffice/user-admin-api/internal/core/ports"
	"github.com/backoffice/user-admin-api/internal/infrastructure/config"
	mongodb "github.com/backoffice/user-admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/backoffice/user-admin-api/internal/infrastructure/db/redis"
	"github.com/backoffice/user-admin-api/internal/infrastructure/mail"
	"github.com/backoffice/user-admin-api/internal/infrastructure/queue"
	"github.com/backoffice/user-admin-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// The unique email index is load-bearing; refuse to serve without it.
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	roleRepo := mongodb.NewRoleRepository(db)
	if err := roleRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalogs")
	}

	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = mail.NewSMTPNotifier(mail.Config{Host: cfg.SMTP.Host, Port: cfg.SMTP.Port, From: cfg.SMTP.From}, log)
	} else {
		log.Warn().Msg("no SMTP host configured, welcome notifications are log-only")
		notifier = mail.NewLogNotifier(log)
	}

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notifier, redisdb.NewWelcomeDedup(rdb), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("user admin API started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
