package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/domain/identity"
	"github.com/logichain/backend/internal/interfaces/http/dto"
)

// RequireRoles aborts with 403 unless the authenticated user holds one of
// the given roles. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		// Admins pass every role gate
		if role != identity.RoleAdmin && !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}

		c.Next()
	}
}
