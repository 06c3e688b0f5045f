// Command trust_sweep recomputes trust scores and badges for every
// promoteur and project. Run it from cron; reputation also refreshes on
// every mutation, so the sweep only catches time-based decay.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"immotrust/internal/app"
	"immotrust/internal/config"
	"immotrust/internal/database"
	"immotrust/internal/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv, ServiceName: "immotrust-trust-sweep"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Error("database connect failed", zap.Error(err))
		return 1
	}
	if err := database.Migrate(db); err != nil {
		zl.Error("migration failed", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, db, nil, zl)
	started := time.Now()
	rep, err := a.SweepReputation(ctx)
	if err != nil {
		zl.Error("trust sweep interrupted", zap.Error(err), zap.Int("projects", rep.Projects), zap.Int("promoteurs", rep.Promoteurs))
		return 1
	}

	zl.Info("trust sweep completed",
		zap.Int("projects", rep.Projects),
		zap.Int("promoteurs", rep.Promoteurs),
		zap.Int("failures", rep.Failures),
		zap.Duration("took", time.Since(started)),
	)
	if rep.Failures > 0 {
		return 2
	}
	return 0
}
