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

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return translate(conn(ctx, r.db).Create(client).Error)
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := conn(ctx, r.db).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return translate(conn(ctx, r.db).Save(client).Error)
}

func (r *clientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Client{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *clientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := conn(ctx, r.db).Model(&entity.Client{}).Scopes(ActiveOnly("clients"))

	if search = strings.TrimSpace(search); search != "" {
		like := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&clients).Error

	return clients, total, err
}

func (r *clientRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Client{}).Scopes(ActiveOnly("clients")).Count(&total).Error
	return total, err
}

// likePattern builds a case-insensitive contains pattern that works on both
// postgres and sqlite.
func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}
