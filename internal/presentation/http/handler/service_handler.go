package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

// ServiceHandler handles the billable service catalog
type ServiceHandler struct {
	catalogService *service.CatalogService
	format         money.Format
}

// NewServiceHandler creates a new catalog handler
func NewServiceHandler(catalogService *service.CatalogService, format money.Format) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService, format: format}
}

// List handles listing active services. With all=true the whole active
// catalog is returned unpaged, for pickers.
func (h *ServiceHandler) List(c *gin.Context) {
	if c.Query("all") == "true" {
		services, err := h.catalogService.ListActiveServices(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		items := make([]response.ServiceResponse, 0, len(services))
		for i := range services {
			items = append(items, response.NewServiceResponse(&services[i], h.format))
		}
		response.OK(c, "Services retrieved successfully", items)
		return
	}

	result, err := h.catalogService.ListServices(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Services retrieved successfully",
		pagination.Map(result, func(s entity.Service) response.ServiceResponse {
			return response.NewServiceResponse(&s, h.format)
		}))
}

// Create handles creating a service
func (h *ServiceHandler) Create(c *gin.Context) {
	var req request.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    enum.ServiceCategory(req.Category),
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", response.NewServiceResponse(svc, h.format))
}

// Get handles getting a single service
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", response.NewServiceResponse(svc, h.format))
}

// Rate returns the current hourly rate of an active service
func (h *ServiceHandler) Rate(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	rate, err := h.catalogService.GetRate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rate retrieved successfully", response.RateResponse{
		ServiceID:  id,
		HourlyRate: rate,
		Display:    h.format.Amount(rate),
	})
}

// Update handles updating a service. Existing line items keep their rate.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateServiceInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Active:      req.Active,
	}
	if req.Category != nil {
		category := enum.ServiceCategory(*req.Category)
		input.Category = &category
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", response.NewServiceResponse(svc, h.format))
}

// Delete deactivates a service
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeactivateService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service deactivated successfully", nil)
}
