package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of due dates.
const DateLayout = "2006-01-02"

// LineItemRequest represents one line item. Omitting hourly_rate copies the
// service's current rate. id is only read when replacing all items.
type LineItemRequest struct {
	ID          *uuid.UUID       `json:"id"`
	ServiceID   uuid.UUID        `json:"service_id"`
	Description string           `json:"description"`
	Hours       decimal.Decimal  `json:"hours"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
}

// CreateQuoteRequest represents a quote creation request, optionally with
// its initial items
type CreateQuoteRequest struct {
	ClientID    uuid.UUID         `json:"client_id"`
	DueDate     *string           `json:"due_date"`
	PaymentMode string            `json:"payment_mode"`
	Status      string            `json:"status"`
	DiscountPct *decimal.Decimal  `json:"discount_pct"`
	TaxPct      *decimal.Decimal  `json:"tax_pct"`
	Notes       *string           `json:"notes"`
	Terms       *string           `json:"terms"`
	Items       []LineItemRequest `json:"items"`
}

// UpdateQuoteRequest represents a partial quote header update
type UpdateQuoteRequest struct {
	ClientID    *uuid.UUID       `json:"client_id"`
	DueDate     *string          `json:"due_date"`
	PaymentMode *string          `json:"payment_mode"`
	Status      *string          `json:"status"`
	DiscountPct *decimal.Decimal `json:"discount_pct"`
	TaxPct      *decimal.Decimal `json:"tax_pct"`
	Notes       *string          `json:"notes"`
	Terms       *string          `json:"terms"`
}

// UpdateStatusRequest represents a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReplaceLineItemsRequest replaces the full item set of a quote
type ReplaceLineItemsRequest struct {
	Items []LineItemRequest `json:"items"`
}

// UpdateLineItemRequest represents a partial line item update. Omitting
// hourly_rate re-snapshots the service's current rate.
type UpdateLineItemRequest struct {
	ServiceID   *uuid.UUID       `json:"service_id"`
	Description *string          `json:"description"`
	Hours       *decimal.Decimal `json:"hours"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
}
