package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteQuotes(t *testing.T) {
	data, err := WriteQuotes([]QuoteRow{
		{
			Number:         "COT-0001",
			Client:         "Acme",
			IssueDate:      "2026-10-16",
			DueDate:        "2026-11-15",
			Status:         "Draft",
			PaymentMode:    "One time",
			Subtotal:       decimal.RequireFromString("500.00"),
			DiscountAmount: decimal.RequireFromString("50.00"),
			TaxAmount:      decimal.RequireFromString("72.00"),
			Total:          decimal.RequireFromString("522.00"),
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "COT-0001", rows[1][0])
	assert.Equal(t, "Acme", rows[1][1])

	total, err := f.GetCellValue(SheetName, "J2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "522", total)
}

func TestWriteQuotes_Empty(t *testing.T) {
	data, err := WriteQuotes(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
