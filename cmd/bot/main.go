// Darts training Telegram bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/api"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/bot"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/config"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/metrics"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/stats"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/store"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/training"
)

const pollTimeoutSeconds = 30

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting bot", "training_duration", cfg.TrainingDuration, "db_path", cfg.DBPath)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	tgAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}
	tgAPI.Debug = cfg.Debug
	slog.Info("Telegram connected", "username", tgAPI.Self.UserName)

	// Initialize services.
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	engine := stats.NewEngine(repo)

	b := bot.New(tgAPI, engine, m, cfg.TrainingDuration)
	tracker := training.NewTracker(repo, b, cfg.TrainingDuration)
	defer tracker.Close()
	b.Attach(tracker)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ops server (health + metrics).
	if cfg.HTTPPort != "" {
		srv := api.NewServer(cfg.HTTPPort, repo, registry)
		go func() {
			slog.Info("Ops server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Ops server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("Ops server forced to shutdown", "error", err)
			}
		}()
	}

	// Long-poll updates until a shutdown signal arrives.
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := tgAPI.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		tgAPI.StopReceivingUpdates()
	}()

	b.Run(ctx, updates)

	slog.Info("Bot stopped")
}
