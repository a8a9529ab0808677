package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vidtrack/internal/models"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// Open connects to Postgres, retrying while the database comes up, and runs
// the schema migration.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	attempt := 0

	backoff := retry.WithMaxRetries(connectAttempts-1, retry.NewConstant(connectDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		log.Info("connecting to database", "attempt", attempt, "max_attempts", connectAttempts)

		conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Warn("database connection failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", attempt, err)
	}
	log.Info("connected to database")

	if err := Migrate(db.WithContext(ctx)); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.LikedVideo{},
		&models.WatchedVideo{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
