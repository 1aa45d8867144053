package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpapi "github.com/streamnest/streamnest/backend/internal/http"
)

const contextUserIDKey = "userID"

// AuthMiddleware rejects requests that do not carry a valid bearer token
func AuthMiddleware(service *Service, response httpapi.ResponseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.UnauthorizedResponse(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.UnauthorizedResponse(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := service.ValidateToken(parts[1])
		if err != nil {
			response.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware attempts to authenticate but lets unauthenticated
// requests through without user context.
func OptionalAuthMiddleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := service.ValidateToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// AdminMiddleware gates a route group to admin accounts. It runs after
// AuthMiddleware and checks the account record rather than trusting claims.
func AdminMiddleware(service *Service, response httpapi.ResponseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			response.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		user, err := service.GetUser(c.Request.Context(), userID)
		if err != nil || !user.IsAdmin {
			response.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id from the request context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	raw, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
