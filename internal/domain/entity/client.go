package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a person or company quotes are prepared for.
// Clients are never hard deleted; Active is cleared instead.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Company   string    `gorm:"size:200" json:"company"`
	Address   string    `gorm:"type:text" json:"address"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// DisplayName is the company when known, otherwise the contact name.
func (c *Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}
