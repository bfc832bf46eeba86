package service

import (
	"context"
	"testing"

	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acme := env.client(t, "Acme")

	statuses := []enum.QuoteStatus{
		enum.QuoteStatusDraft,
		enum.QuoteStatusSent,
		enum.QuoteStatusSent,
		enum.QuoteStatusApproved,
		enum.QuoteStatusRejected,
		enum.QuoteStatusDraft,
	}
	for _, s := range statuses {
		_, err := env.quotes.CreateQuote(ctx, &CreateQuoteInput{ClientID: acme.ID, Status: s})
		require.NoError(t, err)
	}

	stats, err := env.dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TotalQuotes)
	assert.Equal(t, int64(2), stats.PendingQuotes)
	assert.Equal(t, int64(1), stats.ApprovedQuotes)
	assert.Equal(t, int64(1), stats.ActiveClients)
	assert.Equal(t, int64(0), stats.ByStatus[enum.QuoteStatusCancelled])
	require.Len(t, stats.RecentQuotes, 5)
	assert.Equal(t, "COT-0006", stats.RecentQuotes[0].Number)
}
