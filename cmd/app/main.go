package main

import (
	"context"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/adboard/chat-service/internal/config"
	"github.com/adboard/chat-service/internal/repository/cache"
	"github.com/adboard/chat-service/internal/repository/database"
	"github.com/adboard/chat-service/internal/server"
	"github.com/adboard/chat-service/internal/service"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("no .env file: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return
	}

	ctx := context.Background()
	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))

	cache.NewRedisClient(cfg.Redis.Addr())
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(cache.Client().Ping(ctx).Err())
	}); err != nil {
		log.Fatal("failed to connect to redis: ", err)
	}
	slog.Info("Redis inited")

	dsn := cfg.Database.DSN()
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(database.NewPostgresClient(dsn))
	}); err != nil {
		log.Fatal("failed to connect to postgres: ", err)
	}
	slog.Info("Database inited")

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set dialect (migrations)", "error", err)
		return
	}

	migrationsPath := filepath.Join("internal", "repository", "database", "migrations")
	if err := goose.Up(database.Client().DB, migrationsPath); err != nil {
		slog.Error("Failed to migrate up", "error", err)
		return
	}
	slog.Info("Migrations completed")

	go service.GetHub().Run()

	server := server.NewServer(
		cfg,
		server.WithMigrateDown(func() error {
			return goose.DownTo(database.Client().DB, migrationsPath, 0)
		}),
	)
	server.Run(":" + cfg.App.Port)
}
