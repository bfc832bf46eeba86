package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/quotation-api/internal/config"
	"github.com/sangkips/quotation-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewDB opens the database selected by cfg.Driver ("postgres" or "sqlite").
func NewDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "postgres":
		return NewPostgresDB(cfg, log)
	case "sqlite":
		return NewSQLiteDB(sqliteFileDSN(cfg.SQLitePath), cfg.LogLevel, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(cfg.LogLevel, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logger.Named(log, "database").Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// NewSQLiteDB opens a SQLite database. SQLite allows a single writer, so the
// pool is pinned to one connection.
func NewSQLiteDB(dsn, logLevel string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logLevel, log))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Named(log, "database").Info("connected to sqlite", zap.String("dsn", dsn))
	return db, nil
}

// SQLiteMemoryDSN returns a DSN for a named, shared in-memory database.
func SQLiteMemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
}

func sqliteFileDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

func gormConfig(level string, log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(log, logger.ParseGormLevel(level), slowQueryThreshold),
		TranslateError: true,
	}
}
