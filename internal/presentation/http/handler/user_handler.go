package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

// UserHandler handles operator administration HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing operators with pagination
// @Summary List Users
// @Description Get a paginated list of operators with their roles
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Search on name or email"
// @Success 200 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.ListUsers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Users retrieved successfully",
		pagination.Map(result, func(u entity.User) response.UserResponse {
			return response.NewUserResponse(&u)
		}))
}

// Get handles getting a single operator
// @Summary Get User
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", response.NewUserResponse(user))
}

// Update changes an operator's role or active flag
// @Summary Update User
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request.UpdateUserRequest true "Role and active flag"
// @Success 200 {object} response.APIResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}
	actorID := GetUserID(c)
	if actorID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), &service.UpdateUserInput{
		ActorID: *actorID,
		UserID:  userID,
		Role:    req.Role,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", response.NewUserResponse(user))
}

// ListRoles handles listing all roles with their permissions
// @Summary List Roles
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Roles retrieved successfully", gin.H{
		"roles": roles,
	})
}
