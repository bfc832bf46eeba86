package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// QuoteFilter narrows a quote listing.
type QuoteFilter struct {
	Search   string
	Status   *enum.QuoteStatus
	ClientID *uuid.UUID
}

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// GetWithItems loads the quote with its client and line items (and their services).
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// Update saves the editable header fields. The number is never rewritten.
	Update(ctx context.Context, quote *entity.Quote) error
	// UpdateTotals writes only the four derived totals.
	UpdateTotals(ctx context.Context, quote *entity.Quote) error
	// Delete removes the quote and its line items.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter QuoteFilter) ([]entity.Quote, int64, error)
	// ListAll returns every quote matching filter with its client, newest first.
	ListAll(ctx context.Context, filter QuoteFilter) ([]entity.Quote, error)
	// LatestNumber returns the number of the most recently created quote, or "" when there is none.
	LatestNumber(ctx context.Context) (string, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[enum.QuoteStatus]int64, error)
	Recent(ctx context.Context, limit int) ([]entity.Quote, error)
}

// LineItemRepository defines the interface for quote line items
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, quoteID, id uuid.UUID) (*entity.LineItem, error)
	Update(ctx context.Context, item *entity.LineItem) error
	Delete(ctx context.Context, quoteID, id uuid.UUID) error
	ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]entity.LineItem, error)
	// SubtotalsByQuote reads the current stored subtotal of every item on the quote.
	SubtotalsByQuote(ctx context.Context, quoteID uuid.UUID) ([]decimal.Decimal, error)
}

// SequenceRepository hands out numbers from named counters.
type SequenceRepository interface {
	// Reserve atomically increments the named counter and returns the new value.
	// When the counter does not exist yet, seed supplies its starting value
	// (the value before the first increment).
	Reserve(ctx context.Context, name string, seed func(ctx context.Context) (int64, error)) (int64, error)
}

// Transactor runs fn inside a single database transaction. Repositories called
// with the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrDuplicateKey is returned when a write violates a uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate key")
