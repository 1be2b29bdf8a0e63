package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/domain/services"
	"github.com/jashanpj/janasampark/internal/error/response"
	"github.com/jashanpj/janasampark/pkg/logger"
)

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "auth-token"

// CurrentUserKey is the gin context key holding the resolved account.
const CurrentUserKey = "currentUser"

// ExtractToken pulls the session token from the auth cookie, falling back
// to a Bearer Authorization header.
func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie(AuthCookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// CurrentUser returns the account resolved by one of the guards.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// resolve runs the session resolver for the request and aborts with the
// right status on failure. Every guard goes through here; none bypasses the
// store lookup.
func resolve(c *gin.Context, jwtService services.InterfaceJWTService) (*models.User, bool) {
	token := ExtractToken(c)
	if token == "" {
		response.Unauthorized(c)
		c.Abort()
		return nil, false
	}

	user, err := jwtService.ResolveUser(token)
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			response.Unauthorized(c)
		} else {
			logger.Error("session resolution failed: %v", err)
			response.ServerError(c)
		}
		c.Abort()
		return nil, false
	}

	return user, true
}

// RequireAuthenticated admits any live, approved account.
func RequireAuthenticated(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return requireRole(jwtService, models.RoleUser, "")
}

// RequireAdmin admits admin and super admin accounts.
func RequireAdmin(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return requireRole(jwtService, models.RoleAdmin, "Admin access required")
}

// RequireSuperAdmin admits super admin accounts only.
func RequireSuperAdmin(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return requireRole(jwtService, models.RoleSuperAdmin, "Super admin access required")
}

// requireRole is the single role gate: resolve the session, then apply the
// meets-minimum comparison.
func requireRole(jwtService services.InterfaceJWTService, min models.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolve(c, jwtService)
		if !ok {
			return
		}

		if !user.Role.AtLeast(min) {
			response.Forbidden(c, message)
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
