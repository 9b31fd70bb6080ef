package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvasnikov/cinebot/internal/bot"
	"github.com/kvasnikov/cinebot/internal/config"
	"github.com/kvasnikov/cinebot/internal/database"
	"github.com/kvasnikov/cinebot/internal/logging"
	"github.com/kvasnikov/cinebot/internal/provider"
	"github.com/kvasnikov/cinebot/internal/provider/kinopoisk"
	"github.com/kvasnikov/cinebot/internal/provider/websearch"
	"github.com/kvasnikov/cinebot/internal/resolve"
	"github.com/kvasnikov/cinebot/internal/storage"
	"github.com/kvasnikov/cinebot/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	configPath := os.Getenv("CB_CONFIG_PATH")
	if configPath == "" {
		configPath = "/data/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up structured logging
	logManager, logger := logging.NewManager(cfg.Logging)
	defer logManager.Close() //nolint:errcheck
	slog.SetDefault(logger)

	// Open database and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("database ready", slog.String("path", cfg.Database.Path))

	// Initialize services
	store := storage.NewService(db)

	rateLimiters := provider.NewRateLimiterMap()
	catalog := kinopoisk.New(cfg.Catalog.APIKey, rateLimiters, logger)
	linkSearch := websearch.New(rateLimiters, logger)
	resolver := resolve.New(catalog, linkSearch, logger)

	b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.PollTimeout, store, resolver, logger)
	if err != nil {
		return fmt.Errorf("connecting to Telegram: %w", err)
	}

	logger.Info("starting cinebot",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("account", b.Username()),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		return fmt.Errorf("running bot: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
