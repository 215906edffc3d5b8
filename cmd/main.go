package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/app"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

// stopTimeout covers an in-flight scrape: navigation, pacing and up to a dozen enrichments.
const stopTimeout = 2 * time.Minute

func main() {
	cfg, err := config.New()
	if err != nil {
		os.Exit(1)
	}
	log := logger.New(logger.Opts{Env: cfg.App.Env, SentryDSN: cfg.App.SentryDSN})

	application := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	log.Info("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := application.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
