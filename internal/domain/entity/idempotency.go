package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response of a processed request so a retried
// submission (for example a double-clicked "create quote") replays it instead
// of creating a second record.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_user_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate generates a UUID before storing the key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}
