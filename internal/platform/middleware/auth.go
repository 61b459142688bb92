package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/response"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"
	emailKey    = "user_email"
)

// AuthMiddleware rejects requests without a valid bearer access token.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtManager)
		if !ok {
			response.Unauthorized(c, "missing or invalid access token")
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid token is
// present and lets anonymous requests through otherwise.
func OptionalAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwtManager); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRole allows only the given roles. Must run after AuthMiddleware.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			response.Unauthorized(c, "unauthorized")
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient permissions")
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserRole returns the authenticated user's role.
func GetUserRole(c *gin.Context) (auth.Role, bool) {
	v, ok := c.Get(userRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(auth.Role)
	return role, ok
}

// GetUserEmail returns the authenticated user's email.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

func parseBearer(c *gin.Context, jwtManager *auth.JWTManager) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return nil, false
	}
	claims, err := jwtManager.ValidateAccessToken(strings.TrimSpace(token))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(userRoleKey, claims.Role)
	c.Set(emailKey, claims.Email)
}
