package main

import (
	"fmt"

	"github.com/KirkDiggler/pkbattle/internal/config"
	"github.com/KirkDiggler/pkbattle/internal/repositories/coin_ledger"
	"github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// store is the durable home of the coin ledger and the gift events it records
type store struct {
	ledger coin_ledger.Repository
	gifts  gift_event.Repository
	close  func()
}

func openStore(cfg *config.Config, redisClient *redis.Client) (*store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return openPostgresStore(cfg.Postgres)
	default:
		return openRedisStore(redisClient)
	}
}

func openRedisStore(redisClient *redis.Client) (*store, error) {
	ledger, err := coin_ledger.NewRedis(&coin_ledger.Config{RedisClient: redisClient})
	if err != nil {
		return nil, fmt.Errorf("failed to create coin ledger repository: %w", err)
	}

	gifts, err := gift_event.NewRedis(&gift_event.Config{RedisClient: redisClient})
	if err != nil {
		return nil, fmt.Errorf("failed to create gift event repository: %w", err)
	}

	return &store{ledger: ledger, gifts: gifts, close: func() {}}, nil
}

func openPostgresStore(cfg config.PostgresConfig) (*store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get Postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	ledger, err := coin_ledger.NewPostgres(&coin_ledger.PostgresConfig{DB: db, AutoMigrate: true})
	if err != nil {
		return nil, err
	}

	gifts, err := gift_event.NewPostgres(&gift_event.PostgresConfig{DB: db})
	if err != nil {
		return nil, err
	}

	return &store{
		ledger: ledger,
		gifts:  gifts,
		close:  func() { _ = sqlDB.Close() },
	}, nil
}
