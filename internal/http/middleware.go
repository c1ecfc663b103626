package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auth-server/internal/domain"
	"auth-server/internal/service"
)

// Context keys for the identity resolved by authRequired.
const (
	ctxUserIDKey = "auth.user_id"
	ctxRolesKey  = "auth.roles"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authRequired resolves the bearer token into a user identity and attaches
// it to the request context. Missing and invalid tokens both end the request
// with 401 before any handler runs.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := h.sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		roles, err := h.roles.RolesOf(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxRolesKey, roles)
		c.Next()
	}
}

// roleRequired gates a route on role membership. It runs after authRequired
// in the chain, so an unauthenticated caller never reaches the role check.
func (h *Handler) roleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := contextRoles(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, name := range roles {
			if name == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// bearerToken extracts the session token from the Authorization header. Both
// a bare token and the "Bearer <token>" form are accepted.
func bearerToken(c *gin.Context) string {
	value := strings.TrimSpace(c.GetHeader("Authorization"))
	if rest, ok := strings.CutPrefix(value, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return value
}

func currentActor(c *gin.Context) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(int64); ok {
			actor.UserID = id
		}
	}
	if roles, ok := contextRoles(c); ok {
		for _, name := range roles {
			if name == domain.RoleAdmin {
				actor.Admin = true
			}
		}
	}
	return actor
}

func contextRoles(c *gin.Context) ([]string, bool) {
	v, ok := c.Get(ctxRolesKey)
	if !ok {
		return nil, false
	}
	roles, ok := v.([]string)
	return roles, ok
}
