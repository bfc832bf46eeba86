package database

import (
	"fmt"

	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log = logger.Named(log, "migrate")
	log.Info("running database migrations")

	err := db.AutoMigrate(
		// Operators
		&entity.Permission{},
		&entity.Role{},
		&entity.User{},

		// Catalog
		&entity.Client{},
		&entity.Service{},

		// Quotes
		&entity.Quote{},
		&entity.LineItem{},
		&entity.QuoteSequence{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}
