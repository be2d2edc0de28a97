package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/avtoline/showroom-bot/internal/api/router"
	"github.com/avtoline/showroom-bot/internal/catalog"
	appconfig "github.com/avtoline/showroom-bot/internal/config"
	"github.com/avtoline/showroom-bot/internal/dialog"
	"github.com/avtoline/showroom-bot/internal/model"
	"github.com/avtoline/showroom-bot/internal/observability/metrics"
	"github.com/avtoline/showroom-bot/internal/session"
	"github.com/avtoline/showroom-bot/internal/telegram"
	"github.com/avtoline/showroom-bot/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	var logger *logging.Logger
	if cfg.Env == "development" {
		logger = logging.NewText(cfg.LogLevel)
	} else {
		logger = logging.New(cfg.LogLevel)
	}
	logger.Info("starting showroom-bot",
		"env", cfg.Env,
		"ops_port", cfg.OpsPort,
		"session_backend", cfg.SessionBackend,
	)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	// Model artifacts are required; there is no degraded mode.
	artifacts, err := model.LoadArtifacts(cfg.ArtifactsDir)
	if err != nil {
		logger.Error("failed to load model artifacts", "dir", cfg.ArtifactsDir, "error", err)
		os.Exit(1)
	}

	var store session.Store
	switch cfg.SessionBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = session.NewRedisStore(client, cfg.SessionTTL, logger)
	default:
		store = session.NewMemoryStore()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dialogMetrics := metrics.NewDialogMetrics(registry)

	engine, err := dialog.New(dialog.Config{
		Catalog:             cat,
		Classifier:          artifacts.IntentClassifier,
		IntentVectorizer:    artifacts.IntentVectorizer,
		RetrievalVectorizer: artifacts.RetrievalVectorizer,
		Corpus:              artifacts.Corpus,
		Logger:              logger,
		Metrics:             dialogMetrics,
	})
	if err != nil {
		logger.Error("failed to build dialogue engine", "error", err)
		os.Exit(1)
	}

	bot, err := telegram.New(telegram.Config{
		Token:        cfg.TelegramToken,
		Engine:       engine,
		Store:        store,
		Logger:       logger,
		StartMessage: cfg.StartMessage,
		HelpMessage:  cfg.HelpMessage,
	})
	if err != nil {
		logger.Error("failed to create telegram bot", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: ":" + cfg.OpsPort,
		Handler: router.New(&router.Config{
			Logger:         logger,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("ops server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ops server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("telegram bot stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("stopped")
}
