package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a gorm backed store for replayable responses
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Lookup(ctx context.Context, userID uuid.UUID, key string, now time.Time) (*entity.IdempotencyKey, error) {
	var stored entity.IdempotencyKey
	err := conn(ctx, r.db).
		Where("user_id = ? AND key = ? AND expires_at > ?", userID, key, now).
		Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Save upserts on (key, user_id). An expired row left behind by an earlier
// request is overwritten in place.
func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"endpoint", "response_code", "response_body", "created_at", "expires_at",
			}),
		}).
		Create(ikey).Error
	return translate(err)
}

func (r *idempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := conn(ctx, r.db).
		Where("expires_at <= ?", now).
		Delete(&entity.IdempotencyKey{})
	return res.RowsAffected, res.Error
}
