package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/inventory/internal/core/port"
	"github.com/niksmo/inventory/pkg/retry"
	"gorm.io/gorm"
)

var _ port.Storage = (*Storage)(nil)

const defaultConnectAttempts = 5

type Config struct {
	Driver          string
	DSN             string
	AutoMigrate     bool
	ConnectAttempts int
}

// Storage keeps products and sales in a relational database.
//
// It is safe for concurrent use.
type Storage struct {
	db *gorm.DB
}

// Open connects to the database, waiting for it to become available, and
// creates the schema when cfg.AutoMigrate is set.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	const op = "Storage.Open"
	log := slog.With("op", op, "driver", cfg.Driver)

	dialector, err := openDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return Storage{}, fmt.Errorf("%s: %w", op, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGormLogger(),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return Storage{}, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer and in-memory databases live
		// as long as a connection is open.
		sqlDB, err := db.DB()
		if err != nil {
			return Storage{}, fmt.Errorf("%s: %w", op, err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = defaultConnectAttempts
	}
	retryCfg := retry.RetryConfig{
		MaxAttempts: attempts,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}
	err = retry.Do(ctx, retryCfg, func() error {
		err := ping(ctx, db)
		if err != nil {
			log.Warn("database is unavailable", "err", err)
		}
		return err
	})
	if err != nil {
		return Storage{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	log.Info("database is available")

	if cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(
			&productModel{}, &saleModel{},
		); err != nil {
			return Storage{}, fmt.Errorf("%s: failed to migrate: %w", op, err)
		}
		log.Info("schema migrated")
	}

	return Storage{db}, nil
}

func (s Storage) Ping(ctx context.Context) error {
	const op = "Storage.Ping"
	if err := ping(ctx, s.db); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Storage) Close() {
	const op = "Storage.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	sqlDB, err := s.db.DB()
	if err != nil {
		log.Error("failed to get connection pool", "err", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}
