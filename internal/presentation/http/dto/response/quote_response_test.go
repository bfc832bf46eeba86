package response

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteResponse_FormatsAmounts(t *testing.T) {
	q := &entity.Quote{
		ID:             uuid.New(),
		Number:         "COT-0007",
		DueDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentMode:    enum.PaymentModeMonthly,
		Status:         enum.QuoteStatusSent,
		Subtotal:       decimal.RequireFromString("1234.5"),
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.RequireFromString("197.52"),
		Total:          decimal.RequireFromString("1432.02"),
		Client:         &entity.Client{Name: "Ana", Company: "Acme"},
		Items: []entity.LineItem{{
			Description: "Build",
			Hours:       decimal.NewFromInt(10),
			HourlyRate:  decimal.RequireFromString("123.45"),
			Subtotal:    decimal.RequireFromString("1234.5"),
			Service:     &entity.Service{Name: "Backend"},
		}},
	}

	resp := NewQuoteResponse(q, money.DefaultFormat())

	assert.Equal(t, "2026-03-01", resp.DueDate)
	assert.Equal(t, "USD$ 1.234,50", resp.SubtotalDisplay)
	assert.Equal(t, "USD$ 1.432,02", resp.TotalDisplay)
	assert.Equal(t, "Sent", resp.StatusLabel)
	require.NotNil(t, resp.Client)
	assert.Equal(t, "Acme", resp.Client.Company)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Backend", resp.Items[0].ServiceName)
	assert.Equal(t, "USD$ 123,45", resp.Items[0].HourlyRateDisplay)
}

func TestNewQuoteResponse_EmptyItemsIsArray(t *testing.T) {
	resp := NewQuoteResponse(&entity.Quote{Number: "COT-0001"}, money.DefaultFormat())

	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Nil(t, resp.Client)
}
