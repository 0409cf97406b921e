package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/infra-ingest/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/infra-ingest/internal/adapter/kafka"
	"github.com/couchcryptid/infra-ingest/internal/adapter/sqlite"
	"github.com/couchcryptid/infra-ingest/internal/config"
	"github.com/couchcryptid/infra-ingest/internal/observability"
	"github.com/couchcryptid/infra-ingest/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transformer, err := pipeline.NewTransformer(pipeline.TransformOptions{
		Encoding: cfg.SourceEncoding,
		Mode:     cfg.ParseMode,
		MaxBytes: cfg.MaxFileBytes,
	}, logger, metrics)
	if err != nil {
		logger.Error("invalid transformer settings", "error", err)
		os.Exit(1)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	// SQLite sink is optional (enabled via SQLITE_PATH).
	loaders := pipeline.FanOut{writer}
	var store *sqlite.Store
	if cfg.SQLitePath != "" {
		store, err = sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("failed to open sqlite store", "error", err)
			os.Exit(1)
		}
		if err := store.Migrate(ctx); err != nil {
			logger.Error("failed to migrate sqlite store", "error", err)
			os.Exit(1)
		}
		loaders = append(loaders, store)
		logger.Info("sqlite sink enabled", "path", cfg.SQLitePath)
	}

	p := pipeline.New(reader, transformer, loaders, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, transformer, cfg.MaxFileBytes, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	logger.Info("infra ingest started",
		"source_topic", cfg.KafkaSourceTopic,
		"sink_topic", cfg.KafkaSinkTopic,
		"mode", cfg.ParseMode,
		"encoding", cfg.SourceEncoding,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("sqlite close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
