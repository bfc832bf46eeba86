package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuoteStatus represents where a quote stands with the client.
// Any status may follow any other.
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// QuoteStatuses lists every status in display order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusCancelled,
}

func (s QuoteStatus) String() string {
	return string(s)
}

// Label is the human readable status name.
func (s QuoteStatus) Label() string {
	switch s {
	case QuoteStatusDraft:
		return "Draft"
	case QuoteStatusSent:
		return "Sent"
	case QuoteStatusApproved:
		return "Approved"
	case QuoteStatusRejected:
		return "Rejected"
	case QuoteStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

func (s QuoteStatus) IsValid() bool {
	for _, v := range QuoteStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseQuoteStatus validates a raw status value.
func ParseQuoteStatus(raw string) (QuoteStatus, error) {
	s := QuoteStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("quote status %q: %w", raw, ErrInvalidValue)
	}
	return s, nil
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseQuoteStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = QuoteStatusDraft
	case string:
		*s = QuoteStatus(v)
	case []byte:
		*s = QuoteStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into QuoteStatus", value)
	}
	return nil
}
