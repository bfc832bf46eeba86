package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStatus_JSON(t *testing.T) {
	var s QuoteStatus
	require.NoError(t, json.Unmarshal([]byte(`"approved"`), &s))
	assert.Equal(t, QuoteStatusApproved, s)

	assert.Error(t, json.Unmarshal([]byte(`"archived"`), &s))

	out, err := json.Marshal(QuoteStatusSent)
	require.NoError(t, err)
	assert.JSONEq(t, `"sent"`, string(out))
}

func TestQuoteStatus_Scan(t *testing.T) {
	var s QuoteStatus
	require.NoError(t, s.Scan([]byte("rejected")))
	assert.Equal(t, QuoteStatusRejected, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, QuoteStatusDraft, s)

	assert.Error(t, s.Scan(42))
}

func TestPaymentMode(t *testing.T) {
	var m PaymentMode
	require.NoError(t, json.Unmarshal([]byte(`"one_time"`), &m))
	assert.Equal(t, "One-time payment", m.Label())
	assert.False(t, PaymentMode("weekly").IsValid())
}

func TestServiceCategory(t *testing.T) {
	assert.True(t, ServiceCategoryTraining.IsValid())
	assert.Equal(t, "Consulting", ServiceCategoryConsulting.Label())

	var c ServiceCategory
	assert.Error(t, json.Unmarshal([]byte(`"hosting"`), &c))
}
