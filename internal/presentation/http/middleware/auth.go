package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotation-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate the token
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("user_permissions", claims.Permissions)

		c.Next()
	}
}

// RequirePermission creates a middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions, exists := c.Get("user_permissions")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userPermissions, ok := permissions.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !slices.Contains(userPermissions, permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get("user_roles")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRolesList, ok := userRoles.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		hasRole := slices.ContainsFunc(userRolesList, func(r string) bool {
			return slices.Contains(roles, r)
		})
		if !hasRole {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
