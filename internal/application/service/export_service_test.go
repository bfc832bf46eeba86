package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_QuotePDF(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.service(t, "Consulting", "50.00")

	quote, err := env.quotes.CreateQuote(ctx, &CreateQuoteInput{
		ClientID:    env.client(t, "Acme").ID,
		DiscountPct: decPtr("10"),
		Items:       []LineItemInput{{ServiceID: svc.ID, Description: "Review", Hours: dec("10")}},
	})
	require.NoError(t, err)

	for _, withCompany := range []bool{true, false} {
		file, err := env.exports.QuotePDF(ctx, quote.ID, withCompany)
		require.NoError(t, err)
		assert.Equal(t, "quote_COT-0001.pdf", file.Filename)
		assert.Equal(t, ContentTypePDF, file.ContentType)
		assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
	}

	_, err = env.exports.QuotePDF(ctx, uuid.New(), true)
	requireAppError(t, err, http.StatusNotFound)
}

func TestExportService_QuoteDocumentFormatting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.service(t, "Consulting", "1500.00")

	quote, err := env.quotes.CreateQuote(ctx, &CreateQuoteInput{
		ClientID: env.client(t, "Acme").ID,
		Items:    []LineItemInput{{ServiceID: svc.ID, Description: "Retainer", Hours: dec("1")}},
	})
	require.NoError(t, err)

	doc := env.exports.quoteDocument(quote)
	assert.Nil(t, doc.Company)
	assert.Equal(t, "USD$ 1.500,00", doc.Subtotal)
	assert.Equal(t, "Tax (16,00%)", doc.TaxLabel)
	assert.Equal(t, "USD$ 1.740,00", doc.Total)
	assert.Empty(t, doc.DiscountAmount)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Consulting", doc.Lines[0].Service)
}

func TestExportService_QuotesXLSX(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.client(t, "Acme")

	for i := 0; i < 2; i++ {
		_, err := env.quotes.CreateQuote(ctx, &CreateQuoteInput{ClientID: acme.ID})
		require.NoError(t, err)
	}

	file, err := env.exports.QuotesXLSX(ctx, repository.QuoteFilter{})
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Quotes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "COT-0002", rows[1][0])
	assert.Equal(t, "Acme Inc", rows[1][1])

}
