package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a billable catalog entry with a default hourly rate.
type Service struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name        string               `gorm:"size:200;not null" json:"name"`
	Description string               `gorm:"type:text" json:"description"`
	Category    enum.ServiceCategory `gorm:"size:20;not null;default:'development';index" json:"category"`
	HourlyRate  decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	Active      bool                 `gorm:"not null;default:true;index" json:"active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
