package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIdempotencyRepository_ExpiredKeyIsOverwritten(t *testing.T) {
	db, err := database.NewSQLiteDB(database.SQLiteMemoryDSN(t.Name()), "silent", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{
		Key:          "abc",
		UserID:       userID,
		Endpoint:     "POST /api/v1/quotes",
		ResponseCode: 201,
		ResponseBody: `{"number":"COT-0001"}`,
		ExpiresAt:    now.Add(-time.Minute),
	}))

	got, err := repo.Lookup(ctx, userID, "abc", now)
	require.NoError(t, err)
	assert.Nil(t, got, "expired entries are not replayed")

	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{
		Key:          "abc",
		UserID:       userID,
		Endpoint:     "POST /api/v1/quotes",
		ResponseCode: 201,
		ResponseBody: `{"number":"COT-0002"}`,
		ExpiresAt:    now.Add(time.Hour),
	}))

	got, err = repo.Lookup(ctx, userID, "abc", now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"number":"COT-0002"}`, got.ResponseBody)

	var count int64
	require.NoError(t, db.Model(&entity.IdempotencyKey{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Another user may reuse the same key.
	other, err := repo.Lookup(ctx, uuid.New(), "abc", now)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestIdempotencyRepository_PurgeExpired(t *testing.T) {
	db, err := database.NewSQLiteDB(database.SQLiteMemoryDSN(t.Name()), "silent", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	now := time.Now()

	for key, expires := range map[string]time.Time{"old": now.Add(-time.Hour), "fresh": now.Add(time.Hour)} {
		require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{
			Key: key, UserID: uuid.New(), Endpoint: "POST /api/v1/quotes", ResponseCode: 201, ExpiresAt: expires,
		}))
	}

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
