package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotation-api/pkg/money"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	format           money.Format
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, format money.Format) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, format: format}
}

// GetStats returns quote counts and the most recent quotes
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	recent := make([]response.QuoteResponse, 0, len(stats.RecentQuotes))
	for i := range stats.RecentQuotes {
		recent = append(recent, response.NewQuoteResponse(&stats.RecentQuotes[i], h.format))
	}
	byStatus := make(map[enum.QuoteStatus]int64, len(enum.QuoteStatuses))
	for _, status := range enum.QuoteStatuses {
		byStatus[status] = stats.ByStatus[status]
	}

	response.OK(c, "Dashboard stats retrieved successfully", gin.H{
		"total_quotes":    stats.TotalQuotes,
		"pending_quotes":  stats.PendingQuotes,
		"approved_quotes": stats.ApprovedQuotes,
		"active_clients":  stats.ActiveClients,
		"by_status":       byStatus,
		"recent_quotes":   recent,
	})
}
