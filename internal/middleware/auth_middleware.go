package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/pkg/auth"
)

// SessionCookieName is the httpOnly cookie carrying the admin session token.
const SessionCookieName = "session"

// Context keys set by the session middleware.
const (
	ContextUserKey = "sessionUser"
	ContextRoleKey = "sessionRole"
)

// AuthMiddleware guards mutating routes behind the admin session cookie.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// SessionRequired validates the session cookie and stores the principal on
// the request context.
func (m *AuthMiddleware) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			errorDetail := dto.NewErrorDetail(dto.ReasonUnauthenticated, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ReasonUnauthenticated, "Invalid or expired session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserKey, claims.Subject)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}
