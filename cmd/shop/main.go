package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"storefront-client/internal/client"
	"storefront-client/internal/config"
	"storefront-client/internal/handler"
	"storefront-client/internal/notify"
	"storefront-client/internal/repository"
	"storefront-client/internal/service"
	"storefront-client/internal/state"
	"storefront-client/internal/view"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := client.NewLogger(&cfg.Log, os.Stderr)
	log := logger.WithField("environment", cfg.Environment.Name)

	db, err := client.InitSessionDB(&cfg.Session)
	if err != nil {
		log.WithError(err).Fatal("open session store")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	term := view.NewTerminal(os.Stdin, os.Stdout)
	notices := notify.NewStack()
	notifier := notify.Multi{term, notices, notify.NewLogNotifier(log)}

	appState := state.New()
	apiClient := client.NewAPIClient(&cfg.API, appState, notifier, log)
	sessionRepo := repository.NewSessionRepository(db)

	catalogService := service.NewCatalogService(apiClient, appState, notifier, term, log)
	authService := service.NewAuthService(apiClient, appState, sessionRepo, catalogService, notifier, term, log)
	orderService := service.NewOrderService(apiClient, appState, notifier, term, log)

	h := handler.NewHandler(authService, catalogService, orderService, appState, term, term, notifier, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log.WithField("api", cfg.API.BaseURL).Info("storefront client starting")
	if err := h.Start(ctx); err != nil {
		log.WithError(err).Warn("initial catalog load failed")
	}

	repl := &shell{handler: h, term: term, notices: notices}
	if err := repl.run(ctx); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("shell stopped")
	}

	log.Info("storefront client stopped")
}
