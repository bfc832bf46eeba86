package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/domain/quoting"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService manages the billable services quotes are built from
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	log         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, log: log.Named("catalog")}
}

// CreateServiceInput represents the create service input
type CreateServiceInput struct {
	Name        string
	Description string
	Category    enum.ServiceCategory
	HourlyRate  decimal.Decimal
}

// CreateService adds an active service to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", errRequired)
	}

	category := input.Category
	if category == "" {
		category = enum.ServiceCategoryDevelopment
	}
	if !category.IsValid() {
		return nil, apperror.NewFieldError("category", enum.ErrInvalidValue)
	}
	if err := quoting.ValidatePositive(input.HourlyRate); err != nil {
		return nil, apperror.NewFieldError("hourly_rate", err)
	}

	svc := &entity.Service{
		Name:        name,
		Description: input.Description,
		Category:    category,
		HourlyRate:  input.HourlyRate.Round(quoting.StoragePlaces),
		Active:      true,
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		s.log.Error("create service failed", zap.Error(err))
		return nil, err
	}

	return svc, nil
}

// GetService retrieves a service by ID, active or not
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// GetRate returns the current hourly rate of an active service.
// It backs the rate lookup used while filling in a line item.
func (s *CatalogService) GetRate(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	svc, err := s.serviceRepo.GetActiveByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if svc == nil {
		return decimal.Zero, apperror.NewNotFoundError("Service")
	}
	return svc.HourlyRate, nil
}

// ListServices lists active services ordered by category then name
func (s *CatalogService) ListServices(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Service], error) {
	params.Validate()

	services, total, err := s.serviceRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// ListActiveServices returns every active service, for pickers
func (s *CatalogService) ListActiveServices(ctx context.Context) ([]entity.Service, error) {
	return s.serviceRepo.ListActive(ctx)
}

// UpdateServiceInput represents the update service input
type UpdateServiceInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Category    *enum.ServiceCategory
	HourlyRate  *decimal.Decimal
	Active      *bool
}

// UpdateService edits a catalog entry. Changing the rate does not touch
// line items that already copied the old one.
func (s *CatalogService) UpdateService(ctx context.Context, input *UpdateServiceInput) (*entity.Service, error) {
	svc, err := s.GetService(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", errRequired)
		}
		svc.Name = name
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, apperror.NewFieldError("category", enum.ErrInvalidValue)
		}
		svc.Category = *input.Category
	}
	if input.HourlyRate != nil {
		if err := quoting.ValidatePositive(*input.HourlyRate); err != nil {
			return nil, apperror.NewFieldError("hourly_rate", err)
		}
		svc.HourlyRate = input.HourlyRate.Round(quoting.StoragePlaces)
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

// DeactivateService soft deletes a service
func (s *CatalogService) DeactivateService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}

	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info("service deactivated", zap.Stringer("service_id", id))
	return nil
}
