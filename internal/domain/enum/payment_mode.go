package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMode is how the client pays for a quote.
type PaymentMode string

const (
	PaymentModeMonthly PaymentMode = "monthly"
	PaymentModeAnnual  PaymentMode = "annual"
	PaymentModeOneTime PaymentMode = "one_time"
)

var paymentModeLabels = map[PaymentMode]string{
	PaymentModeMonthly: "Monthly",
	PaymentModeAnnual:  "Annual",
	PaymentModeOneTime: "One-time payment",
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) Label() string {
	if label, ok := paymentModeLabels[m]; ok {
		return label
	}
	return string(m)
}

func (m PaymentMode) IsValid() bool {
	_, ok := paymentModeLabels[m]
	return ok
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	mode := PaymentMode(str)
	if !mode.IsValid() {
		return fmt.Errorf("payment mode %q: %w", str, ErrInvalidValue)
	}
	*m = mode
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = PaymentModeOneTime
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMode", value)
	}
	return nil
}
