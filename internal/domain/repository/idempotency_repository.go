package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by user and
// Idempotency-Key.
type IdempotencyRepository interface {
	// Lookup returns the stored response for the key if it has not expired at now.
	Lookup(ctx context.Context, userID uuid.UUID, key string, now time.Time) (*entity.IdempotencyKey, error)
	// Save stores the response, replacing an expired entry under the same key.
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// PurgeExpired removes entries that expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
