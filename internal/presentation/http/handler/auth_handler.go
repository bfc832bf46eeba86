package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
// @Summary Login
// @Description Authenticate an operator and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", tokenPayload(output))
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", tokenPayload(output))
}

// Profile returns the authenticated operator
// @Summary Profile
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", response.NewUserResponse(user))
}

// ChangePassword changes the authenticated operator's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /profile/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          *userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// CreateUser lets an admin add an operator account
// @Summary Create operator
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "Operator"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.CreateOperator(c.Request.Context(), &service.CreateOperatorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", response.NewUserResponse(user))
}

func tokenPayload(output *service.LoginOutput) gin.H {
	return gin.H{
		"user":          response.NewUserResponse(output.User),
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	}
}
