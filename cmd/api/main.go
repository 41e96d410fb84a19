package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aufaa4aaaaa/kasir-app/internal/app"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "kasir-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "kasir-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	till, err := app.New(ctx, cfg, logg, app.Options{})
	if err != nil {
		logg.Error(ctx, "failed to bootstrap till", err)
		os.Exit(1)
	}

	serveErr := till.Serve(ctx)

	if err := till.Close(context.Background()); err != nil {
		logg.Error(context.Background(), "final flush failed", err)
	}
	if serveErr != nil {
		os.Exit(1)
	}
	logg.Info(context.Background(), "kasir api shut down gracefully")
}
