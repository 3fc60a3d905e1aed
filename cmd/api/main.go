// Package main provides the entry point for the API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frameworkhub/backend/internal/api"
	mongostore "github.com/frameworkhub/backend/internal/store/mongo"
	"github.com/frameworkhub/backend/internal/trigger"
	"github.com/frameworkhub/backend/pkg/config"
	"github.com/frameworkhub/backend/pkg/logger"
)

func main() {
	log := logger.New(slog.LevelInfo, true)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Database connection, acquired once and shared across all requests.
	storeCfg := mongostore.DefaultConfig(cfg.MongoURL, cfg.MongoDatabase)
	store, err := mongostore.NewMongoStore(storeCfg, log.Logger)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	// Jenkins trigger script runner
	runner := trigger.NewRunner(
		cfg.Jenkins.Interpreter,
		cfg.Jenkins.Script,
		cfg.Jenkins.WorkDir,
		log.WithComponent("trigger").Logger,
	)

	server := api.NewServer(cfg, store, runner, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	log.Info("starting API server",
		"host", cfg.APIHost,
		"port", cfg.APIPort,
	)

	if err := server.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
