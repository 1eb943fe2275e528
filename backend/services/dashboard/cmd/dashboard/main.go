package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"emfmonitor/backend/libs/logging"
	"emfmonitor/backend/services/dashboard/internal/app"
	"emfmonitor/backend/services/dashboard/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger("dashboard")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init dashboard", zap.Error(err))
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("dashboard stopped with error", zap.Error(err))
	}
}
