package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/pkg/jwt"
	"wheelshare/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const ctxPrincipalKey = "principal"

type AuthMiddleware struct {
	jwtService *jwt.Service
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role := user.Role(claims.Role)
		if !role.IsValid() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxPrincipalKey, shared.Principal{ID: claims.UserID, Role: role})
		c.Next()
	}
}

// RequireRole restricts a route to the given roles. Use after RequireAuth().
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		for _, r := range roles {
			if principal.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		c.Abort()
	}
}

func GetPrincipal(c *gin.Context) (shared.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return shared.Principal{}, false
	}
	p, ok := v.(shared.Principal)
	return p, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
