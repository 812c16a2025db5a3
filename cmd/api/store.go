package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/webtilians/backA/internal/config"
	"github.com/webtilians/backA/internal/repo"
	"github.com/webtilians/backA/migrations"
)

// openReservationStore builds the reservation repo selected by
// cfg.StoreBackend. The returned func releases its connections.
func openReservationStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.ReservationRepo, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.BackendRedis:
		return openRedis(ctx, cfg, logger)
	default:
		logger.Info("using file reservation store", "path", cfg.ReservationsPath)
		return repo.NewFileReservationRepo(cfg.ReservationsPath), func() {}, nil
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.ReservationRepo, func(), error) {
	// New() does not open connections immediately; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	db := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, db)
	_ = db.Close()
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("migrations applied", "count", applied)

	return repo.NewPGReservationRepo(pool), pool.Close, nil
}

func openRedis(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.ReservationRepo, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("redis connection established", "addr", cfg.RedisAddr, "prefix", cfg.RedisKeyPrefix)

	return repo.NewRedisReservationRepo(client, cfg.RedisKeyPrefix), func() { _ = client.Close() }, nil
}
