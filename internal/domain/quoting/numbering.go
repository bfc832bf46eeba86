package quoting

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SequencePrefix prefixes every quote number.
const SequencePrefix = "COT"

// ErrMalformedNumber is returned when a quote number has no numeric suffix.
var ErrMalformedNumber = errors.New("malformed quote number")

// FormatSequenceNumber renders n as COT-0001. Values past 9999 widen.
func FormatSequenceNumber(n int64) string {
	return fmt.Sprintf("%s-%04d", SequencePrefix, n)
}

// ParseSequenceNumber extracts the integer part of a COT-<digits> number.
func ParseSequenceNumber(s string) (int64, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] != SequencePrefix {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}

	digits := parts[1]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return n, nil
}

// LastSequenceValue returns the counter value encoded in the most recent quote
// number, or 0 when there is none or it cannot be parsed.
func LastSequenceValue(last string) int64 {
	if last == "" {
		return 0
	}
	n, err := ParseSequenceNumber(last)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextSequenceNumber derives the number following last. An empty or malformed
// last number starts the sequence at COT-0001.
func NextSequenceNumber(last string) string {
	return FormatSequenceNumber(LastSequenceValue(last) + 1)
}
