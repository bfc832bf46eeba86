package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"go.uber.org/zap"
)

var errOwnAccount = errors.New("cannot be changed on your own account")

// UserService handles operator administration
type UserService struct {
	tx       repository.Transactor
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	log      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	log *zap.Logger,
) *UserService {
	return &UserService{
		tx:       tx,
		userRepo: userRepo,
		roleRepo: roleRepo,
		log:      log.Named("user"),
	}
}

// ListUsers returns a page of operators with their roles
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns an operator with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents an admin change to an operator. ActorID is the
// admin making the change; admins cannot demote or disable themselves.
type UpdateUserInput struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	Role    *string
	Active  *bool
}

// UpdateUser changes an operator's role or active flag
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	if input.ActorID == input.UserID {
		if input.Role != nil && *input.Role != entity.RoleAdmin {
			return nil, apperror.NewFieldError("role", errOwnAccount)
		}
		if input.Active != nil && !*input.Active {
			return nil, apperror.NewFieldError("active", errOwnAccount)
		}
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.NewNotFoundError("User")
		}

		if input.Role != nil {
			role, err := s.roleRepo.GetByName(ctx, *input.Role)
			if err != nil {
				return err
			}
			if role == nil {
				return apperror.NewFieldError("role", errUnknownRole)
			}
			if err := s.userRepo.ReplaceRoles(ctx, user, []entity.Role{*role}); err != nil {
				return err
			}
		}
		if input.Active != nil && user.Active != *input.Active {
			user.Active = *input.Active
			if err := s.userRepo.Update(ctx, user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("operator updated", zap.Stringer("user_id", input.UserID), zap.Stringer("by", input.ActorID))
	return s.GetUser(ctx, input.UserID)
}

// ListRoles returns all roles with their permissions
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}
