package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/sifan077/linkstore/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultBusyTimeoutMS = 5000

// NewGorm opens the SQLite file described by cfg, creating its directory when missing.
func NewGorm(cfg config.SQLiteConfig) (*gorm.DB, error) {
	if err := EnsureDir(cfg.Path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: retrieve sql db: %w", err)
	}

	// One writer at a time; the busy timeout queues the rest.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// EnsureDir creates the directory holding the database file.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sqlite: create data dir %s: %w", dir, err)
	}
	return nil
}

// DSN appends the pragmas every connection should start with.
func DSN(cfg config.SQLiteConfig) string {
	busy := cfg.BusyTimeoutMS
	if busy <= 0 {
		busy = defaultBusyTimeoutMS
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cfg.Path, busy)
}

// AutoMigrate ensures the tables for models exist. Safe to call repeatedly.
func AutoMigrate(ctx context.Context, db *gorm.DB, models ...interface{}) error {
	if db == nil || len(models) == 0 {
		return nil
	}

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("sqlite: auto migrate: %w", err)
	}

	return nil
}
