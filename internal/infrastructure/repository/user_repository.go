package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translate(conn(ctx, r.db).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).First(&user, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).
		Preload("Roles.Permissions").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return translate(conn(ctx, r.db).Omit("Roles").Save(user).Error)
}

func (r *userRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	var users []entity.User
	var total int64

	query := conn(ctx, r.db).Model(&entity.User{})
	if search = strings.TrimSpace(search); search != "" {
		like := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Roles").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&users).Error

	return users, total, err
}

func (r *userRepository) ReplaceRoles(ctx context.Context, user *entity.User, roles []entity.Role) error {
	return conn(ctx, r.db).Model(user).Omit("Roles.*").Association("Roles").Replace(roles)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domainRepo.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := conn(ctx, r.db).Preload("Permissions").First(&role, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	err := conn(ctx, r.db).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}
