package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sudo-hablu/chatter/pkg/log"
	"github.com/sudo-hablu/chatter/pkg/response"
)

const (
	UserIDKey     = log.FieldUserID
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	TokenQueryKey = "token"
)

// TokenValidator resolves a session token to the user it belongs to.
type TokenValidator interface {
	ValidateToken(token string) (userID string, ok bool)
}

// AuthMiddleware guards routes with the current session token.
type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth accepts the token from an Authorization bearer header or,
// for WebSocket upgrades, the token query parameter.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing or malformed session token")
			return
		}

		userID, valid := m.validator.ValidateToken(token)
		if !valid {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(log.WithUser(c.Request.Context(), userID))
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader(AuthHeaderKey); header != "" {
		if !strings.HasPrefix(header, BearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		return token, token != ""
	}
	if token := c.Query(TokenQueryKey); token != "" {
		return token, true
	}
	return "", false
}

// GetUserID extracts user ID from Gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
