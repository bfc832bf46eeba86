package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing active clients
func (h *ClientHandler) List(c *gin.Context) {
	result, err := h.clientService.ListClients(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Create handles creating a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	var req request.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Address: req.Address,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete deactivates a client. Its quotes are kept.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.DeactivateClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client deactivated successfully", nil)
}
