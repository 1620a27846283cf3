package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/startuplab/landing-api/internal/app"
	"github.com/startuplab/landing-api/internal/config"
	"github.com/startuplab/landing-api/pkg/logger"
)

// @title Landing API
// @version 1.0
// @description Email-subscription and contact-form backend for the landing page
// @BasePath /
func main() {
	// Optional in deployment, the platform injects the environment there.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load config: %v", err)
	}

	zlog := logger.NewLogger(cfg.LogsPath, "landing-api", cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, zlog)

	container, err := application.Init(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize application")
	}

	go func() {
		<-ctx.Done()
		if err := application.Stop(container); err != nil {
			zlog.Error().Err(err).Msg("failed to shut down cleanly")
		}
	}()

	if err := application.Start(container); err != nil {
		zlog.Fatal().Err(err).Msg("server error")
	}
}
