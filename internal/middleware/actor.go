package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

const (
	// ActorEmailHeader and ActorRoleHeader carry the identity of the logged-in client
	ActorEmailHeader = "X-Actor-Email"
	ActorRoleHeader  = "X-Actor-Role"

	// ActorEmailKey and ActorRoleKey are the gin.Context keys set by ActorMiddleware
	ActorEmailKey = "actor_email"
	ActorRoleKey  = "actor_role"
)

// ActorMiddleware reads the actor identity headers into the context. Anonymous requests
// pass through with no actor set; an unknown role is rejected.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(ActorEmailHeader)
		role := models.Role(c.GetHeader(ActorRoleHeader))
		if email == "" {
			c.Next()
			return
		}
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown actor role",
			})
			return
		}
		c.Set(ActorEmailKey, email)
		c.Set(ActorRoleKey, role)
		c.Next()
	}
}

// ActorFrom returns the actor ActorMiddleware stored on c
func ActorFrom(c *gin.Context) (*models.Actor, bool) {
	email := c.GetString(ActorEmailKey)
	if email == "" {
		return nil, false
	}
	role, _ := c.Get(ActorRoleKey)
	r, _ := role.(models.Role)
	return &models.Actor{Email: email, Role: r}, true
}

// RequireRole rejects requests whose actor has none of roles
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		if !slices.Contains(roles, actor.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
