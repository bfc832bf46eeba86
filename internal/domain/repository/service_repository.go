package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

// ServiceRepository defines the interface for the billable service catalog
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	// GetActiveByID returns nil when the service is missing or inactive.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// List returns active services ordered by category then name.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Service, int64, error)
	ListActive(ctx context.Context) ([]entity.Service, error)
}
