package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat_Amount(t *testing.T) {
	f := DefaultFormat()

	tests := []struct {
		in   string
		want string
	}{
		{"0", "USD$ 0,00"},
		{"522", "USD$ 522,00"},
		{"1234.5", "USD$ 1.234,50"},
		{"1234567.891", "USD$ 1.234.567,89"},
		{"-1000", "USD$ -1.000,00"},
		{"999.999", "USD$ 1.000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Amount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormat_CustomSeparators(t *testing.T) {
	f := Format{Symbol: "$", DecimalSep: ".", ThousandsSep: ",", Places: 2}

	assert.Equal(t, "$12,345.60", f.Amount(decimal.RequireFromString("12345.6")))
	assert.Equal(t, "16.00%", f.Percent(decimal.NewFromInt(16)))
}

func TestFormat_NoPlaces(t *testing.T) {
	f := Format{ThousandsSep: " ", Places: 0}

	assert.Equal(t, "1 000 000", f.Number(decimal.NewFromInt(1000000)))
}
