package quoting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestCalculateTotals_ConsultingScenario(t *testing.T) {
	line := LineSubtotal(d("10"), d("50.00"))

	totals := CalculateTotals(d("10"), d("16"), []decimal.Decimal{line})

	assertDecimal(t, "500", totals.Subtotal)
	assertDecimal(t, "50", totals.DiscountAmount)
	assertDecimal(t, "450", totals.Base())
	assertDecimal(t, "72", totals.TaxAmount)
	assertDecimal(t, "522", totals.Total)
}

func TestCalculateTotals_EmptyLinesAreZero(t *testing.T) {
	totals := CalculateTotals(d("25"), d("16"), nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCalculateTotals_OrderIndependent(t *testing.T) {
	lines := []decimal.Decimal{d("0.10"), d("0.20"), d("1234.56"), d("0.01")}
	reversed := []decimal.Decimal{lines[3], lines[2], lines[1], lines[0]}

	a := CalculateTotals(d("7.5"), d("16"), lines)
	b := CalculateTotals(d("7.5"), d("16"), reversed)

	assert.True(t, a.Total.Equal(b.Total))
	assertDecimal(t, "1234.87", a.Subtotal)
}

func TestCalculateTotals_Identities(t *testing.T) {
	cases := []struct {
		discount, tax string
		lines         []string
	}{
		{"0", "0", []string{"100"}},
		{"100", "16", []string{"99.99", "0.01"}},
		{"12.5", "8.25", []string{"333.33", "333.33", "333.34"}},
		{"0", "100", []string{"0.07"}},
	}

	for _, tc := range cases {
		lines := make([]decimal.Decimal, 0, len(tc.lines))
		for _, l := range tc.lines {
			lines = append(lines, d(l))
		}
		discount, tax := d(tc.discount), d(tc.tax)

		totals := CalculateTotals(discount, tax, lines)

		hundred := decimal.NewFromInt(100)
		assert.True(t, totals.DiscountAmount.Equal(totals.Subtotal.Mul(discount).Div(hundred)))
		assert.True(t, totals.TaxAmount.Equal(totals.Subtotal.Sub(totals.DiscountAmount).Mul(tax).Div(hundred)))
		assert.True(t, totals.Total.Equal(totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount)))
	}
}

func TestCalculateTotals_NoFloatDrift(t *testing.T) {
	lines := make([]decimal.Decimal, 0, 10)
	for i := 0; i < 10; i++ {
		lines = append(lines, d("0.10"))
	}

	totals := CalculateTotals(decimal.Zero, decimal.Zero, lines)

	assertDecimal(t, "1.00", totals.Subtotal)
}

func TestTotals_Rounded(t *testing.T) {
	totals := CalculateTotals(d("3"), d("16"), []decimal.Decimal{LineSubtotal(d("1.5"), d("33.33"))})
	rounded := totals.Rounded()

	assertDecimal(t, "49.995", totals.Subtotal)
	assert.Equal(t, "50.00", rounded.Subtotal.StringFixed(2))
	assert.Equal(t, "1.50", rounded.DiscountAmount.StringFixed(2))
	assert.Equal(t, "7.76", rounded.TaxAmount.StringFixed(2))
	assert.Equal(t, "56.25", rounded.Total.StringFixed(2))
}

func TestValidatePercentage(t *testing.T) {
	require.NoError(t, ValidatePercentage(d("0")))
	require.NoError(t, ValidatePercentage(d("100")))
	require.NoError(t, ValidatePercentage(d("16.5")))

	assert.ErrorIs(t, ValidatePercentage(d("-0.01")), ErrPercentageOutOfRange)
	assert.ErrorIs(t, ValidatePercentage(d("100.01")), ErrPercentageOutOfRange)
}

func TestValidatePositive(t *testing.T) {
	require.NoError(t, ValidatePositive(d("0.25")))

	assert.ErrorIs(t, ValidatePositive(decimal.Zero), ErrNotPositive)
	assert.ErrorIs(t, ValidatePositive(d("-3")), ErrNotPositive)
}
