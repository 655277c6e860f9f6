package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/auth"
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/session"
)

// Context keys set by SessionAuth.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUserName = "userName"
	ContextEmail    = "userEmail"
)

// AuthMiddleware validates session cookies on protected routes.
type AuthMiddleware struct {
	sessions *session.Manager
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession aborts with 401 unless the request carries a valid
// session cookie. On success the caller identity is stored on the context.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.sessions.Read(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserName, claims.DisplayName)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// PrincipalFromContext builds the authorization principal from the values
// RequireSession stored. The zero principal is returned when absent.
func PrincipalFromContext(c *gin.Context) auth.Principal {
	p := auth.Principal{}
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(int64); ok {
			p.UserID = id
		}
	}
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(models.Role); ok {
			p.Role = role
		}
	}
	return p
}
