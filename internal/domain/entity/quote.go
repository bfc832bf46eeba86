package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/domain/quoting"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote is a priced proposal for a client.
// Subtotal, DiscountAmount, TaxAmount and Total are derived from Items and
// only ever written through ApplyTotals.
type Quote struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number         string           `gorm:"size:20;not null;uniqueIndex" json:"number"`
	ClientID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID         *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	DueDate        time.Time        `gorm:"type:date;not null" json:"due_date"`
	PaymentMode    enum.PaymentMode `gorm:"size:10;not null;default:'one_time'" json:"payment_mode"`
	Status         enum.QuoteStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	DiscountPct    decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0" json:"discount_pct"`
	TaxPct         decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:16" json:"tax_pct"`
	Subtotal       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	Total          decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Notes          string           `gorm:"type:text" json:"notes"`
	Terms          string           `gorm:"type:text" json:"terms"`
	CreatedAt      time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relationships
	Client *Client    `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"client,omitempty"`
	Items  []LineItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// ApplyTotals stores totals at storage resolution.
func (q *Quote) ApplyTotals(t quoting.Totals) {
	r := t.Rounded()
	q.Subtotal = r.Subtotal
	q.DiscountAmount = r.DiscountAmount
	q.TaxAmount = r.TaxAmount
	q.Total = r.Total
}

// Totals returns the stored totals.
func (q *Quote) Totals() quoting.Totals {
	return quoting.Totals{
		Subtotal:       q.Subtotal,
		DiscountAmount: q.DiscountAmount,
		TaxAmount:      q.TaxAmount,
		Total:          q.Total,
	}
}

// LineItem is one billed unit of work on a quote.
type LineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"service_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Hours       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"hours"`
	HourlyRate  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT" json:"service,omitempty"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "quote_line_items"
}

// Recalculate applies the rate snapshot rule and refreshes the subtotal.
// A nil rate copies the service's current rate onto the item.
func (li *LineItem) Recalculate(rate *decimal.Decimal, serviceRate decimal.Decimal) {
	if rate != nil {
		li.HourlyRate = *rate
	} else {
		li.HourlyRate = serviceRate
	}
	li.Subtotal = quoting.LineSubtotal(li.Hours, li.HourlyRate).Round(quoting.StoragePlaces)
}
