package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teame/hospital-api/config"
	"github.com/teame/hospital-api/internal/repository/postgres"
	"github.com/teame/hospital-api/pkg/logger"
	"github.com/teame/hospital-api/pkg/messaging/redis"
	"github.com/teame/hospital-api/pkg/metrics"
	"github.com/teame/hospital-api/pkg/worker"
)

// The worker drains the outbox: events written transactionally by the
// API are published to the broker here, never inline with a request.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	zl := lg.Zerolog()
	broker, err := redis.NewBroker(cfg.Redis.URL, zl)
	if err != nil {
		lg.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(postgres.NewBaseRepository(db))
	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryCount,
		CleanupAfter:  cfg.Outbox.CleanupDays,
	}, lg, metrics.NewMetrics("hospital_worker"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		lg.Info("shutting down worker")
		cancel()
	}()

	lg.Info("starting outbox worker")
	if err := processor.Start(ctx); err != nil && err != context.Canceled {
		lg.Fatal(err, "worker failed")
	}
}
