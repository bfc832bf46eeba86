// Package money renders decimal amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format describes how amounts are displayed. It is a plain value so each
// caller decides which convention applies; nothing here touches process state.
type Format struct {
	Symbol       string
	DecimalSep   string
	ThousandsSep string
	Places       int32
}

// DefaultFormat matches the historical invoice layout: "USD$ 1.234,56".
func DefaultFormat() Format {
	return Format{
		Symbol:       "USD$ ",
		DecimalSep:   ",",
		ThousandsSep: ".",
		Places:       2,
	}
}

// Amount formats d with the currency symbol, e.g. "USD$ 1.234,56".
func (f Format) Amount(d decimal.Decimal) string {
	return f.Symbol + f.Number(d)
}

// Number formats d without the currency symbol.
func (f Format) Number(d decimal.Decimal) string {
	places := f.Places
	if places < 0 {
		places = 0
	}

	raw := d.StringFixed(places)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	intPart, fracPart, _ := strings.Cut(raw, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(group(intPart, f.ThousandsSep))
	if places > 0 {
		b.WriteString(f.DecimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}

// Percent formats a percentage, e.g. "16,00%".
func (f Format) Percent(d decimal.Decimal) string {
	return f.Number(d) + "%"
}

func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
