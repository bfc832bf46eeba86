package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"go.uber.org/zap"
)

var errRequired = errors.New("is required")

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
	log        *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, log *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, log: log.Named("client")}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
}

// CreateClient registers a new active client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", errRequired)
	}

	client := &entity.Client{
		Name:    name,
		Email:   strings.TrimSpace(input.Email),
		Phone:   input.Phone,
		Company: input.Company,
		Address: input.Address,
		Active:  true,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		s.log.Error("create client failed", zap.Error(err))
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID, active or not
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists active clients matching search on name, company or email
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	params.Validate()

	clients, total, err := s.clientRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Address *string
	Active  *bool
}

// UpdateClient updates a client's contact fields
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", errRequired)
		}
		client.Name = name
	}
	if input.Email != nil {
		client.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Company != nil {
		client.Company = *input.Company
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Active != nil {
		client.Active = *input.Active
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeactivateClient soft deletes a client. Its quotes are kept.
func (s *ClientService) DeactivateClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}

	if err := s.clientRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info("client deactivated", zap.Stringer("client_id", id))
	return nil
}
