package db

import (
	"fmt"

	"trello/internal/config"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}
	gormLogger := NewGormLogger(zapLogger, logLevel)

	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := Open(postgres.Open(cfg.PostgresDSN()), gormLogger)
		if err != nil {
			return nil, err
		}
		zapLogger.Info("Connected to PostgreSQL",
			zap.String("host", cfg.DBHost),
			zap.String("database", cfg.DBName),
		)
		return db, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.DBPath, gormLogger)
		if err != nil {
			return nil, err
		}
		zapLogger.Info("Opened SQLite database", zap.String("path", cfg.DBPath))
		return db, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
}

// Open opens a gorm connection and checks that it is reachable.
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenSQLite opens the SQLite file at path (":memory:" works too). The pool is
// limited to a single connection so writers queue instead of failing with
// SQLITE_BUSY.
func OpenSQLite(path string, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := Open(gormlite.Open(path), gormLogger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=wal",
		"PRAGMA foreign_keys=on",
		"PRAGMA busy_timeout=5000",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return db, nil
}
