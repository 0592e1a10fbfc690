package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkful/forkful/internal/api"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/env"
	"github.com/forkful/forkful/internal/log"
	"github.com/forkful/forkful/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	logger := log.New(nil)

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := setup.Database(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}

	environment := env.New(logger, db, &conf)
	environment.Images = setup.Images(conf)

	if err := api.Start(environment); err != nil {
		logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}
