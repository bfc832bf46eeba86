package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/domain/quoting"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/metrics"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// quoteSequenceName is the counter row quote numbers are drawn from.
const quoteSequenceName = "quote"

var (
	errUnknownClient   = errors.New("references an unknown client")
	errInactiveClient  = errors.New("references an inactive client")
	errUnknownService  = errors.New("references an unknown service")
	errUnknownLineItem = errors.New("is not a line item of this quote")
)

// QuoteDefaults are applied to fields a new quote leaves empty
type QuoteDefaults struct {
	TaxPct       decimal.Decimal
	ValidityDays int
	Notes        string
	Terms        string
}

// QuoteService handles quotes and their line items. Every mutation that can
// change a line subtotal or a percentage recomputes the quote totals inside
// the same transaction.
type QuoteService struct {
	tx          repository.Transactor
	quoteRepo   repository.QuoteRepository
	itemRepo    repository.LineItemRepository
	clientRepo  repository.ClientRepository
	serviceRepo repository.ServiceRepository
	seqRepo     repository.SequenceRepository
	defaults    QuoteDefaults
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	tx repository.Transactor,
	quoteRepo repository.QuoteRepository,
	itemRepo repository.LineItemRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	seqRepo repository.SequenceRepository,
	defaults QuoteDefaults,
	m *metrics.Metrics,
	log *zap.Logger,
) *QuoteService {
	return &QuoteService{
		tx:          tx,
		quoteRepo:   quoteRepo,
		itemRepo:    itemRepo,
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		seqRepo:     seqRepo,
		defaults:    defaults,
		metrics:     m,
		log:         log.Named("quote"),
		now:         time.Now,
	}
}

// LineItemInput describes one line item. A nil HourlyRate copies the
// service's current rate on new items and on items moved to another service;
// an existing item on the same service keeps its stored rate. ID is only read
// by ReplaceLineItems.
type LineItemInput struct {
	ID          *uuid.UUID
	ServiceID   uuid.UUID
	Description string
	Hours       decimal.Decimal
	HourlyRate  *decimal.Decimal
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	UserID      *uuid.UUID
	ClientID    uuid.UUID
	DueDate     *time.Time
	PaymentMode enum.PaymentMode
	Status      enum.QuoteStatus
	DiscountPct *decimal.Decimal
	TaxPct      *decimal.Decimal
	Notes       *string
	Terms       *string
	Items       []LineItemInput
}

// CreateQuote numbers and stores a quote with its initial items
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	now := s.now()

	quote := &entity.Quote{
		ClientID:    input.ClientID,
		UserID:      input.UserID,
		DueDate:     dateOnly(now.AddDate(0, 0, s.defaults.ValidityDays)),
		PaymentMode: input.PaymentMode,
		Status:      input.Status,
		DiscountPct: decimal.Zero,
		TaxPct:      s.defaults.TaxPct,
		Notes:       s.defaults.Notes,
		Terms:       s.defaults.Terms,
	}
	if input.DueDate != nil {
		quote.DueDate = dateOnly(*input.DueDate)
	}
	if quote.PaymentMode == "" {
		quote.PaymentMode = enum.PaymentModeOneTime
	}
	if quote.Status == "" {
		quote.Status = enum.QuoteStatusDraft
	}
	if input.DiscountPct != nil {
		quote.DiscountPct = *input.DiscountPct
	}
	if input.TaxPct != nil {
		quote.TaxPct = *input.TaxPct
	}
	if input.Notes != nil {
		quote.Notes = *input.Notes
	}
	if input.Terms != nil {
		quote.Terms = *input.Terms
	}

	fieldErrs := validateHeader(quote)
	for i, item := range input.Items {
		fieldErrs = append(fieldErrs, validateLineItem(fmt.Sprintf("items[%d].", i), item)...)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkClient(ctx, quote.ClientID); err != nil {
			return err
		}

		n, err := s.seqRepo.Reserve(ctx, quoteSequenceName, s.seedSequence)
		if err != nil {
			return err
		}
		quote.Number = quoting.FormatSequenceNumber(n)

		if err := s.quoteRepo.Create(ctx, quote); err != nil {
			return s.mapWriteError(err, quote.Number)
		}

		for i, in := range input.Items {
			if _, err := s.createItem(ctx, quote.ID, fmt.Sprintf("items[%d].", i), in); err != nil {
				return err
			}
		}

		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.QuoteEvent("created")
	s.log.Info("quote created",
		zap.String("number", quote.Number),
		zap.Stringer("quote_id", quote.ID),
		zap.Int("items", len(input.Items)),
		zap.String("total", quote.Total.StringFixed(quoting.StoragePlaces)),
	)

	return s.GetQuote(ctx, quote.ID)
}

// seedSequence starts the counter where existing quote numbers left off.
func (s *QuoteService) seedSequence(ctx context.Context) (int64, error) {
	last, err := s.quoteRepo.LatestNumber(ctx)
	if err != nil {
		return 0, err
	}
	return quoting.LastSequenceValue(last), nil
}

// GetQuote retrieves a quote with its client and line items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	Params   *pagination.PaginationParams
	Search   string
	Status   *enum.QuoteStatus
	ClientID *uuid.UUID
}

// ListQuotes lists quotes newest first
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	params := input.Params
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperror.NewFieldError("status", enum.ErrInvalidValue)
	}

	quotes, total, err := s.quoteRepo.List(ctx, params, repository.QuoteFilter{
		Search:   strings.TrimSpace(input.Search),
		Status:   input.Status,
		ClientID: input.ClientID,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// ListAllQuotes returns every quote matching filter, newest first, without paging
func (s *QuoteService) ListAllQuotes(ctx context.Context, filter repository.QuoteFilter) ([]entity.Quote, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperror.NewFieldError("status", enum.ErrInvalidValue)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.quoteRepo.ListAll(ctx, filter)
}

// UpdateQuoteInput represents the input for editing a quote header
type UpdateQuoteInput struct {
	ID          uuid.UUID
	ClientID    *uuid.UUID
	DueDate     *time.Time
	PaymentMode *enum.PaymentMode
	Status      *enum.QuoteStatus
	DiscountPct *decimal.Decimal
	TaxPct      *decimal.Decimal
	Notes       *string
	Terms       *string
}

// UpdateQuote edits the header fields and recomputes the totals.
// The quote number is never changed.
func (s *QuoteService) UpdateQuote(ctx context.Context, input *UpdateQuoteInput) (*entity.Quote, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.loadQuote(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.ClientID != nil && *input.ClientID != quote.ClientID {
			if err := s.checkClient(ctx, *input.ClientID); err != nil {
				return err
			}
			quote.ClientID = *input.ClientID
		}
		if input.DueDate != nil {
			quote.DueDate = dateOnly(*input.DueDate)
		}
		if input.PaymentMode != nil {
			quote.PaymentMode = *input.PaymentMode
		}
		if input.Status != nil {
			quote.Status = *input.Status
		}
		if input.DiscountPct != nil {
			quote.DiscountPct = *input.DiscountPct
		}
		if input.TaxPct != nil {
			quote.TaxPct = *input.TaxPct
		}
		if input.Notes != nil {
			quote.Notes = *input.Notes
		}
		if input.Terms != nil {
			quote.Terms = *input.Terms
		}

		if fieldErrs := validateHeader(quote); len(fieldErrs) > 0 {
			return apperror.NewValidationError(fieldErrs)
		}

		if err := s.quoteRepo.Update(ctx, quote); err != nil {
			return err
		}
		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, input.ID)
}

// UpdateStatus sets the status. Any status may follow any other.
func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", enum.ErrInvalidValue)
	}

	quote, err := s.loadQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := quote.Status
	quote.Status = status
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	s.metrics.QuoteEvent("status_" + status.String())
	s.log.Info("quote status changed",
		zap.String("number", quote.Number),
		zap.Stringer("from", previous),
		zap.Stringer("to", status),
	)

	return s.GetQuote(ctx, id)
}

// DeleteQuote removes a quote together with its line items
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.loadQuote(ctx, id)
	if err != nil {
		return err
	}

	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		s.log.Error("delete quote failed", zap.String("number", quote.Number), zap.Error(err))
		return err
	}

	s.metrics.QuoteEvent("deleted")
	s.log.Info("quote deleted", zap.String("number", quote.Number))
	return nil
}

// AddLineItem adds an item to a quote and recomputes its totals
func (s *QuoteService) AddLineItem(ctx context.Context, quoteID uuid.UUID, input LineItemInput) (*entity.Quote, error) {
	if fieldErrs := validateLineItem("", input); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.loadQuote(ctx, quoteID)
		if err != nil {
			return err
		}
		if _, err := s.createItem(ctx, quote.ID, "", input); err != nil {
			return err
		}
		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quoteID)
}

// UpdateLineItemInput represents a partial edit of one line item
type UpdateLineItemInput struct {
	QuoteID     uuid.UUID
	ItemID      uuid.UUID
	ServiceID   *uuid.UUID
	Description *string
	Hours       *decimal.Decimal
	HourlyRate  *decimal.Decimal
}

// UpdateLineItem edits one item. Without an explicit rate the stored rate is
// kept unless the item moves to another service.
func (s *QuoteService) UpdateLineItem(ctx context.Context, input *UpdateLineItemInput) (*entity.Quote, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.loadQuote(ctx, input.QuoteID)
		if err != nil {
			return err
		}

		item, err := s.itemRepo.GetByID(ctx, quote.ID, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Line item")
		}

		merged := LineItemInput{
			ServiceID:   item.ServiceID,
			Description: item.Description,
			Hours:       item.Hours,
			HourlyRate:  input.HourlyRate,
		}
		if input.ServiceID != nil {
			merged.ServiceID = *input.ServiceID
		}
		if input.Description != nil {
			merged.Description = *input.Description
		}
		if input.Hours != nil {
			merged.Hours = *input.Hours
		}
		if fieldErrs := validateLineItem("", merged); len(fieldErrs) > 0 {
			return apperror.NewValidationError(fieldErrs)
		}

		if err := s.saveItem(ctx, item, "", merged); err != nil {
			return err
		}
		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, input.QuoteID)
}

// RemoveLineItem deletes one item and recomputes the quote totals
func (s *QuoteService) RemoveLineItem(ctx context.Context, quoteID, itemID uuid.UUID) (*entity.Quote, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.loadQuote(ctx, quoteID)
		if err != nil {
			return err
		}

		item, err := s.itemRepo.GetByID(ctx, quote.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Line item")
		}

		if err := s.itemRepo.Delete(ctx, quote.ID, itemID); err != nil {
			return err
		}
		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quoteID)
}

// ReplaceLineItems makes the quote's items match items exactly: entries with
// an ID update that item, entries without one are added, and items not listed
// are removed. Totals are recomputed once at the end.
func (s *QuoteService) ReplaceLineItems(ctx context.Context, quoteID uuid.UUID, items []LineItemInput) (*entity.Quote, error) {
	var fieldErrs []apperror.FieldError
	for i, item := range items {
		fieldErrs = append(fieldErrs, validateLineItem(fmt.Sprintf("items[%d].", i), item)...)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.loadQuote(ctx, quoteID)
		if err != nil {
			return err
		}

		existing, err := s.itemRepo.ListByQuote(ctx, quote.ID)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*entity.LineItem, len(existing))
		for i := range existing {
			byID[existing[i].ID] = &existing[i]
		}

		kept := make(map[uuid.UUID]bool, len(items))
		for i, in := range items {
			prefix := fmt.Sprintf("items[%d].", i)
			if in.ID == nil {
				if _, err := s.createItem(ctx, quote.ID, prefix, in); err != nil {
					return err
				}
				continue
			}

			item, ok := byID[*in.ID]
			if !ok {
				return apperror.NewFieldError(prefix+"id", errUnknownLineItem)
			}
			if err := s.saveItem(ctx, item, prefix, in); err != nil {
				return err
			}
			kept[item.ID] = true
		}

		for _, item := range existing {
			if kept[item.ID] {
				continue
			}
			if err := s.itemRepo.Delete(ctx, quote.ID, item.ID); err != nil {
				return err
			}
		}

		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quoteID)
}

// RecalculateTotals recomputes a quote's totals from its stored items
func (s *QuoteService) RecalculateTotals(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.loadQuote(ctx, id)
		if err != nil {
			return err
		}
		return s.recalculate(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, id)
}

// recalculate reads the current line subtotals and stores the derived totals.
func (s *QuoteService) recalculate(ctx context.Context, quote *entity.Quote) error {
	subtotals, err := s.itemRepo.SubtotalsByQuote(ctx, quote.ID)
	if err != nil {
		return err
	}

	quote.ApplyTotals(quoting.CalculateTotals(quote.DiscountPct, quote.TaxPct, subtotals))
	if err := s.quoteRepo.UpdateTotals(ctx, quote); err != nil {
		s.log.Error("store quote totals failed", zap.String("number", quote.Number), zap.Error(err))
		return err
	}

	s.metrics.TotalsRecalculated()
	s.log.Debug("quote totals recalculated",
		zap.String("number", quote.Number),
		zap.Int("items", len(subtotals)),
		zap.String("subtotal", quote.Subtotal.StringFixed(quoting.StoragePlaces)),
		zap.String("total", quote.Total.StringFixed(quoting.StoragePlaces)),
	)
	return nil
}

func (s *QuoteService) loadQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

func (s *QuoteService) checkClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewFieldError("client_id", errUnknownClient)
	}
	if !client.Active {
		return apperror.NewFieldError("client_id", errInactiveClient)
	}
	return nil
}

// serviceRate returns the current rate of the referenced service. Inactive
// services still resolve.
func (s *QuoteService) serviceRate(ctx context.Context, field string, id uuid.UUID) (decimal.Decimal, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if svc == nil {
		return decimal.Zero, apperror.NewFieldError(field, errUnknownService)
	}
	return svc.HourlyRate, nil
}

func (s *QuoteService) createItem(ctx context.Context, quoteID uuid.UUID, prefix string, in LineItemInput) (*entity.LineItem, error) {
	rate, err := s.serviceRate(ctx, prefix+"service_id", in.ServiceID)
	if err != nil {
		return nil, err
	}

	item := &entity.LineItem{
		QuoteID:     quoteID,
		ServiceID:   in.ServiceID,
		Description: strings.TrimSpace(in.Description),
		Hours:       in.Hours.Round(quoting.StoragePlaces),
	}
	item.Recalculate(roundedPtr(in.HourlyRate), rate)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *QuoteService) saveItem(ctx context.Context, item *entity.LineItem, prefix string, in LineItemInput) error {
	rate, err := s.serviceRate(ctx, prefix+"service_id", in.ServiceID)
	if err != nil {
		return err
	}

	override := roundedPtr(in.HourlyRate)
	if override == nil && in.ServiceID == item.ServiceID {
		stored := item.HourlyRate
		override = &stored
	}

	item.ServiceID = in.ServiceID
	item.Description = strings.TrimSpace(in.Description)
	item.Hours = in.Hours.Round(quoting.StoragePlaces)
	item.Recalculate(override, rate)
	item.Service = nil

	return s.itemRepo.Update(ctx, item)
}

// mapWriteError turns a unique violation on the quote number into a conflict.
func (s *QuoteService) mapWriteError(err error, number string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		s.metrics.NumberConflict()
		s.log.Warn("quote number already taken", zap.String("number", number), zap.Error(err))
		return apperror.WrapConflict(fmt.Sprintf("Quote number %s is already in use", number), err)
	}
	s.log.Error("create quote failed", zap.String("number", number), zap.Error(err))
	return err
}

func validateHeader(q *entity.Quote) []apperror.FieldError {
	var errs []apperror.FieldError
	if q.ClientID == uuid.Nil {
		errs = append(errs, apperror.FieldError{Field: "client_id", Message: errRequired.Error()})
	}
	if !q.PaymentMode.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "payment_mode", Message: enum.ErrInvalidValue.Error()})
	}
	if !q.Status.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "status", Message: enum.ErrInvalidValue.Error()})
	}
	if err := quoting.ValidatePercentage(q.DiscountPct); err != nil {
		errs = append(errs, apperror.FieldError{Field: "discount_pct", Message: err.Error()})
	}
	if err := quoting.ValidatePercentage(q.TaxPct); err != nil {
		errs = append(errs, apperror.FieldError{Field: "tax_pct", Message: err.Error()})
	}
	return errs
}

func validateLineItem(prefix string, in LineItemInput) []apperror.FieldError {
	var errs []apperror.FieldError
	if in.ServiceID == uuid.Nil {
		errs = append(errs, apperror.FieldError{Field: prefix + "service_id", Message: errRequired.Error()})
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, apperror.FieldError{Field: prefix + "description", Message: errRequired.Error()})
	}
	if err := quoting.ValidatePositive(in.Hours.Round(quoting.StoragePlaces)); err != nil {
		errs = append(errs, apperror.FieldError{Field: prefix + "hours", Message: err.Error()})
	}
	if in.HourlyRate != nil {
		if err := quoting.ValidatePositive(in.HourlyRate.Round(quoting.StoragePlaces)); err != nil {
			errs = append(errs, apperror.FieldError{Field: prefix + "hourly_rate", Message: err.Error()})
		}
	}
	return errs
}

func roundedPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(quoting.StoragePlaces)
	return &r
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
