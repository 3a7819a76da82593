package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

// GatewayAuthMiddleware resolves the caller's identity from the trusted
// X-User-ID header set by the API gateway after session validation, and
// loads the user's role from the local user table.
type GatewayAuthMiddleware struct {
	userRepo repositories.UserRepository
}

func NewGatewayAuthMiddleware(userRepo repositories.UserRepository) *GatewayAuthMiddleware {
	return &GatewayAuthMiddleware{userRepo: userRepo}
}

func (m *GatewayAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid user identity",
			})
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), uint(id))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unknown user",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// RequireRoleMiddleware rejects callers whose role is not in the allowed
// set. Role checks are explicit per route group.
func (m *GatewayAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		role, ok := value.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient role for this operation",
		})
	}
}
