package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations.
// List and CountActive only see active clients; GetByID sees every client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Deactivate clears the active flag. It never removes the row.
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	CountActive(ctx context.Context) (int64, error)
}
