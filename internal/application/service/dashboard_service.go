package service

import (
	"context"

	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/domain/repository"
)

// recentQuotesLimit is how many quotes the dashboard lists.
const recentQuotesLimit = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	quoteRepo  repository.QuoteRepository
	clientRepo repository.ClientRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(quoteRepo repository.QuoteRepository, clientRepo repository.ClientRepository) *DashboardService {
	return &DashboardService{
		quoteRepo:  quoteRepo,
		clientRepo: clientRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalQuotes    int64                      `json:"total_quotes"`
	PendingQuotes  int64                      `json:"pending_quotes"`
	ApprovedQuotes int64                      `json:"approved_quotes"`
	ActiveClients  int64                      `json:"active_clients"`
	ByStatus       map[enum.QuoteStatus]int64 `json:"by_status"`
	RecentQuotes   []entity.Quote             `json:"recent_quotes"`
}

// GetDashboardStats returns dashboard statistics. Pending means sent and
// awaiting an answer.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	total, err := s.quoteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalQuotes = total

	byStatus, err := s.quoteRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.ByStatus = byStatus
	stats.PendingQuotes = byStatus[enum.QuoteStatusSent]
	stats.ApprovedQuotes = byStatus[enum.QuoteStatusApproved]

	clients, err := s.clientRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveClients = clients

	recent, err := s.quoteRepo.Recent(ctx, recentQuotesLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentQuotes = recent

	return stats, nil
}
