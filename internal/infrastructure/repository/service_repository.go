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

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new billable service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return translate(conn(ctx, r.db).Create(service).Error)
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := conn(ctx, r.db).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := conn(ctx, r.db).Scopes(ActiveOnly("services")).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return translate(conn(ctx, r.db).Save(service).Error)
}

func (r *serviceRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Service{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *serviceRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	query := conn(ctx, r.db).Model(&entity.Service{}).Scopes(ActiveOnly("services"))

	if search = strings.TrimSpace(search); search != "" {
		like := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("category ASC, name ASC").
		Find(&services).Error

	return services, total, err
}

func (r *serviceRepository) ListActive(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	err := conn(ctx, r.db).Scopes(ActiveOnly("services")).
		Order("category ASC, name ASC").
		Find(&services).Error
	return services, err
}
