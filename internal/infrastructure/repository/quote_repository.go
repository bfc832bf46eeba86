package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// headerColumns are the quote columns an edit may change.
var headerColumns = []string{
	"client_id", "due_date", "payment_mode", "status",
	"discount_pct", "tax_pct", "notes", "terms", "updated_at",
}

var totalsColumns = []string{"subtotal", "discount_amount", "tax_amount", "total", "updated_at"}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(quote).Error)
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).Preload("Client").First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Service").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return translate(conn(ctx, r.db).Model(quote).
		Select(headerColumns).
		Omit(clause.Associations).
		Updates(quote).Error)
}

func (r *quoteRepository) UpdateTotals(ctx context.Context, quote *entity.Quote) error {
	return conn(ctx, r.db).Model(quote).
		Select(totalsColumns).
		Omit(clause.Associations).
		Updates(quote).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&entity.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Quote{}, "id = ?", id).Error
	})
}

func (r *quoteRepository) filtered(ctx context.Context, filter domainRepo.QuoteFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&entity.Quote{}).
		Joins("LEFT JOIN clients ON clients.id = quotes.client_id")

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("LOWER(quotes.number) LIKE ? OR LOWER(clients.name) LIKE ? OR LOWER(clients.company) LIKE ?",
			like, like, like)
	}
	if filter.Status != nil {
		query = query.Where("quotes.status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("quotes.client_id = ?", *filter.ClientID)
	}
	return query
}

func (r *quoteRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.QuoteFilter) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := r.filtered(ctx, filter).
		Select("quotes.*").
		Preload("Client").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("quotes.created_at DESC").
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) ListAll(ctx context.Context, filter domainRepo.QuoteFilter) ([]entity.Quote, error) {
	var quotes []entity.Quote
	err := r.filtered(ctx, filter).
		Select("quotes.*").
		Preload("Client").
		Order("quotes.created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) LatestNumber(ctx context.Context) (string, error) {
	var numbers []string
	err := conn(ctx, r.db).Model(&entity.Quote{}).
		Order("created_at DESC").
		Limit(1).
		Pluck("number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

func (r *quoteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Quote{}).Count(&total).Error
	return total, err
}

func (r *quoteRepository) CountByStatus(ctx context.Context) (map[enum.QuoteStatus]int64, error) {
	var rows []struct {
		Status enum.QuoteStatus
		Count  int64
	}
	err := conn(ctx, r.db).Model(&entity.Quote{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.QuoteStatus]int64, len(enum.QuoteStatuses))
	for _, s := range enum.QuoteStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *quoteRepository) Recent(ctx context.Context, limit int) ([]entity.Quote, error) {
	var quotes []entity.Quote
	err := conn(ctx, r.db).
		Preload("Client").
		Order("created_at DESC").
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}

type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository
func NewLineItemRepository(db *gorm.DB) domainRepo.LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Create(ctx context.Context, item *entity.LineItem) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(item).Error
}

func (r *lineItemRepository) GetByID(ctx context.Context, quoteID, id uuid.UUID) (*entity.LineItem, error) {
	var item entity.LineItem
	err := conn(ctx, r.db).
		Preload("Service").
		First(&item, "id = ? AND quote_id = ?", id, quoteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lineItemRepository) Update(ctx context.Context, item *entity.LineItem) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(item).Error
}

func (r *lineItemRepository) Delete(ctx context.Context, quoteID, id uuid.UUID) error {
	return conn(ctx, r.db).
		Where("id = ? AND quote_id = ?", id, quoteID).
		Delete(&entity.LineItem{}).Error
}

func (r *lineItemRepository) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]entity.LineItem, error) {
	var items []entity.LineItem
	err := conn(ctx, r.db).
		Preload("Service").
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *lineItemRepository) SubtotalsByQuote(ctx context.Context, quoteID uuid.UUID) ([]decimal.Decimal, error) {
	var items []entity.LineItem
	err := conn(ctx, r.db).
		Select("id", "subtotal").
		Where("quote_id = ?", quoteID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	subtotals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		subtotals = append(subtotals, item.Subtotal)
	}
	return subtotals, nil
}
