// Package quoting holds the arithmetic behind a quote: line subtotals,
// discount and tax totals, and sequence numbering. Nothing here touches storage.
package quoting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// StoragePlaces is the number of decimal places monetary values are persisted with.
const StoragePlaces int32 = 2

var (
	hundred = decimal.NewFromInt(100)

	// ErrPercentageOutOfRange is returned when a percentage falls outside [0,100].
	ErrPercentageOutOfRange = errors.New("must be between 0 and 100")
	// ErrNotPositive is returned when hours or a rate is zero or negative.
	ErrNotPositive = errors.New("must be greater than 0")
)

// Totals are the four derived monetary fields of a quote.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// CalculateTotals derives the quote totals from its line subtotals.
// All arithmetic is exact; callers round with Rounded before persisting.
// An empty set of lines yields all-zero totals.
func CalculateTotals(discountPct, taxPct decimal.Decimal, lineSubtotals []decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, s := range lineSubtotals {
		subtotal = subtotal.Add(s)
	}

	discount := decimal.Zero
	if !discountPct.IsZero() {
		discount = subtotal.Mul(discountPct).Div(hundred)
	}

	base := subtotal.Sub(discount)
	tax := base.Mul(taxPct).Div(hundred)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          base.Add(tax),
	}
}

// Base is the subtotal after discount and before tax.
func (t Totals) Base() decimal.Decimal {
	return t.Subtotal.Sub(t.DiscountAmount)
}

// Rounded returns the totals at storage resolution.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(StoragePlaces),
		DiscountAmount: t.DiscountAmount.Round(StoragePlaces),
		TaxAmount:      t.TaxAmount.Round(StoragePlaces),
		Total:          t.Total.Round(StoragePlaces),
	}
}

// LineSubtotal is hours × rate, exact.
func LineSubtotal(hours, rate decimal.Decimal) decimal.Decimal {
	return hours.Mul(rate)
}

// ValidatePercentage checks that pct lies in [0,100].
func ValidatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("percentage %s: %w", pct.String(), ErrPercentageOutOfRange)
	}
	return nil
}

// ValidatePositive checks that v is strictly greater than zero.
func ValidatePositive(v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("value %s: %w", v.String(), ErrNotPositive)
	}
	return nil
}
