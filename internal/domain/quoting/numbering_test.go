package quoting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSequenceNumber(t *testing.T) {
	assert.Equal(t, "COT-0001", FormatSequenceNumber(1))
	assert.Equal(t, "COT-0042", FormatSequenceNumber(42))
	assert.Equal(t, "COT-9999", FormatSequenceNumber(9999))
	assert.Equal(t, "COT-10000", FormatSequenceNumber(10000))
}

func TestParseSequenceNumber(t *testing.T) {
	n, err := ParseSequenceNumber("COT-0042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = ParseSequenceNumber("COT-12345")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), n)

	for _, bad := range []string{"", "COT", "COT-", "COT-abc", "COT-12a", "INV-0001", "COT-1-2", "COT--1", "COT-+5"} {
		_, err := ParseSequenceNumber(bad)
		assert.ErrorIs(t, err, ErrMalformedNumber, bad)
	}
}

func TestNextSequenceNumber(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "COT-0001"},
		{"COT-0042", "COT-0043"},
		{"COT-abc", "COT-0001"},
		{"COT-9999", "COT-10000"},
		{"COT-10000", "COT-10001"},
	}

	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSequenceNumber(tt.last))
		})
	}
}
