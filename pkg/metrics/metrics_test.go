package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.QuoteEvent("created")
	m.QuoteEvent("created")
	m.TotalsRecalculated()
	m.ExportRendered(ExportPDF)
	m.NumberConflict()
	m.ObserveRequest(http.MethodGet, "/api/v1/quotes", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.quotes.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recalcs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues(ExportPDF)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/v1/quotes", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.QuoteEvent("created")
		m.TotalsRecalculated()
		m.ExportRendered(ExportXLSX)
		m.NumberConflict()
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("test")
	m.QuoteEvent("created")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `quotation_quotes_total{action="created",service="test"} 1`)
}
