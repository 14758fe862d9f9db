// Command social serves social login for Google, GitHub, Facebook and LINE.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/social/internal"
	"github.com/dmitrymomot/social/internal/config"
	"github.com/dmitrymomot/social/middlewares"
	"github.com/dmitrymomot/social/pkg/logger"
	"github.com/dmitrymomot/social/pkg/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor(), session.IDExtractor())

	app, err := internal.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Run blocks until SIGINT or SIGTERM.
	if err := app.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
