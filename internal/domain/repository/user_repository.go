package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetWithRoles loads the user together with roles and their permissions.
	GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List returns operators with their roles, searching name and email.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
	// ReplaceRoles swaps the user's role set.
	ReplaceRoles(ctx context.Context, user *entity.User, roles []entity.Role) error
}

// RoleRepository defines the interface for role data operations
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
}
