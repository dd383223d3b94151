// The worker consumes task completion events from RabbitMQ and appends them
// to the analysis event log. It runs where task producers and the analyzer
// are separate processes.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cadencehq/cadence/internal/analysis/application/commands"
	analysisDomain "github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/cadencehq/cadence/internal/analysis/infrastructure/messaging"
	"github.com/cadencehq/cadence/internal/analysis/infrastructure/persistence"
	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/shared/infrastructure/migrations"
	"github.com/cadencehq/cadence/pkg/config"
	"github.com/cadencehq/cadence/pkg/observability"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

func main() {
	logger := observability.LoggerFromEnv()
	logger.Info("starting cadence worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required for the worker")
		os.Exit(1)
	}

	events, cleanup, err := openEventRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open event store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	recorder := commands.NewRecordEventHandler(events, logger)
	subscriber := messaging.NewTaskCompletedSubscriber(recorder, logger)

	consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:    cfg.RabbitMQURL,
		Logger: logger,
	}, eventbus.NewRegistry(logger))
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	consumer.Register(subscriber)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("worker stopped")
}

func openEventRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (analysisDomain.EventRepository, func(), error) {
	if cfg.DatabaseDriver == "postgres" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("connected to postgres")
		return persistence.NewPostgresEventRepository(pool), pool.Close, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("opened sqlite database", "path", cfg.SQLitePath)
	return persistence.NewSQLiteEventRepository(db), func() { _ = db.Close() }, nil
}
